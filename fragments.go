package commsig

// ──────────────────────────────────────────────
// Fragment Tables — trait text snippets
// ──────────────────────────────────────────────
//
// Three static tables: (dimension, value) → description for every
// dimension, and strength / improvement fragments for drive and expression
// only. Lookups never fail: a miss resolves to the dimension's default
// phrase. Descriptions read as verb phrases completing "You …".

// defaultDescription fills any description miss, whatever the dimension.
const defaultDescription = "have a unique approach"

var descriptionFragments = map[TraitDimension]map[string]string{
	DimDrive: {
		"action":      "move fast and push for results",
		"research":    "dig deep before you commit",
		"collaborate": "rally people around shared goals",
		"optimize":    "refine systems until they run clean",
	},
	DimExpression: {
		"direct":    "get straight to the point",
		"animated":  "bring color and energy",
		"attentive": "listen first and speak with care",
		"measured":  "choose words deliberately",
	},
	DimAdaptive: {
		"flexible":   "bend without breaking",
		"steady":     "hold a steady course",
		"deliberate": "take stock before you shift",
	},
	DimIntelligence: {
		// "analytical" was declared twice in earlier revisions of this
		// table; the wording "reason from the numbers first" was silently
		// shadowed by the entry below, which is kept as the canonical one.
		"analytical": "break problems into parts and test each one",
		"creative":   "connect ideas nobody else puts together",
		"practical":  "favor what works over what impresses",
		"strategic":  "play the long game",
	},
}

// Strength and improvement fragments exist for drive and expression only.
// The adaptive and intelligence dimensions have never carried entries here;
// composition fills those gaps with the default phrases below.
var strengthFragments = map[TraitDimension]map[string]string{
	DimDrive: {
		"action":      "turn plans into motion quickly",
		"research":    "ground decisions in solid evidence",
		"collaborate": "get the best out of the people around you",
		"optimize":    "find the faster, cleaner way to do almost anything",
	},
	DimExpression: {
		"direct":    "leave no room for misunderstanding",
		"animated":  "make ideas land with real impact",
		"attentive": "make people feel genuinely heard",
		"measured":  "keep discussions precise and calm",
	},
}

var improvementFragments = map[TraitDimension]map[string]string{
	DimDrive: {
		"action":      "pause to confirm direction before sprinting",
		"research":    "set a deadline for analysis and move",
		"collaborate": "make the final call even without full agreement",
		"optimize":    "accept good enough when polish costs momentum",
	},
	DimExpression: {
		"direct":    "soften delivery when stakes are personal",
		"animated":  "leave more space for others to jump in",
		"attentive": "voice your own view earlier",
		"measured":  "show a little more of your first reaction",
	},
}

var strengthDefaults = map[TraitDimension]string{
	DimDrive:      "bring focused energy to your work",
	DimExpression: "communicate in your own distinctive way",
}

var improvementDefaults = map[TraitDimension]string{
	DimDrive:      "experiment with pacing your efforts",
	DimExpression: "try varying how you deliver your message",
}

// Description returns the description fragment for (dim, value), or the
// shared default phrase when the pair is unknown.
func Description(dim TraitDimension, value string) string {
	if vals, ok := descriptionFragments[dim]; ok {
		if frag, ok := vals[value]; ok {
			return frag
		}
	}
	return defaultDescription
}

// Strength returns the strength fragment for (dim, value). Misses resolve
// to the dimension's default phrase.
func Strength(dim TraitDimension, value string) string {
	if vals, ok := strengthFragments[dim]; ok {
		if frag, ok := vals[value]; ok {
			return frag
		}
	}
	if def, ok := strengthDefaults[dim]; ok {
		return def
	}
	return defaultDescription
}

// Improvement returns the improvement fragment for (dim, value). Misses
// resolve to the dimension's default phrase.
func Improvement(dim TraitDimension, value string) string {
	if vals, ok := improvementFragments[dim]; ok {
		if frag, ok := vals[value]; ok {
			return frag
		}
	}
	if def, ok := improvementDefaults[dim]; ok {
		return def
	}
	return defaultDescription
}
