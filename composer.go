package commsig

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// ──────────────────────────────────────────────
// Response Composer — category templates
// ──────────────────────────────────────────────
//
// Pure string construction: fragment lookups plus fixed surrounding prose.
// Trait values the tables do not recognize degrade to declared defaults,
// never to an error or empty text. The only non-deterministic output is
// the no-profile fallback suggestion (see pickSuggestion).

// clauseTable maps one dimension's trait values to a rendered clause. The
// fallback entry is part of the data, so an unrecognized value resolves to
// a declared clause instead of an implicit code path.
type clauseTable struct {
	byValue  map[string]string
	fallback string
}

func (t clauseTable) clause(value string) string {
	if c, ok := t.byValue[value]; ok {
		return c
	}
	return t.fallback
}

// ─── strengths / improvement ───

// strengthAdaptiveClauses carries the three-way branch appended to the
// strengths response: flexible, steady, and everything else.
var strengthAdaptiveClauses = clauseTable{
	byValue: map[string]string{
		"flexible": "You also adapt smoothly when plans change.",
		"steady":   "You also bring welcome stability when everything else is shifting.",
	},
	fallback: "You also balance consistency with openness to change.",
}

// improvementReassurance closes every improvement response, whatever the
// trait values.
const improvementReassurance = " Remember that these are growth opportunities, not flaws. Your style already works for you."

// ─── team collaboration clauses ───

var teamDriveClauses = clauseTable{
	byValue: map[string]string{
		"action":      "push the group toward decisions and keep momentum high",
		"research":    "ground discussions in evidence and well-checked facts",
		"collaborate": "pull quieter voices in and keep everyone aligned",
		"optimize":    "spot inefficiencies and streamline how the group works",
	},
	fallback: "focus on keeping the team organized and efficient",
}

var teamExpressionClauses = clauseTable{
	byValue: map[string]string{
		"direct":    "say what needs saying without burying the point",
		"animated":  "bring energy that keeps meetings from going flat",
		"attentive": "notice what teammates need before they ask",
		"measured":  "weigh your words so discussions stay precise",
	},
	fallback: "communicate in a way the team can count on",
}

var teamAdaptiveClauses = clauseTable{
	byValue: map[string]string{
		"flexible":   "roll with shifting priorities without losing the thread",
		"steady":     "anchor the team when plans get turbulent",
		"deliberate": "make sure changes are thought through before they land",
	},
	fallback: "help the team absorb change at a workable pace",
}

// ─── adaptation clauses ───

var adaptationAdaptiveClauses = clauseTable{
	byValue: map[string]string{
		"flexible":   "adjust course quickly and rarely look back",
		"steady":     "keep your footing and change only what truly needs changing",
		"deliberate": "map the new terrain before you move",
	},
	fallback: "make thoughtful adjustments",
}

var adaptationDriveClauses = clauseTable{
	byValue: map[string]string{
		"action":      "treat the shift as a chance to act",
		"research":    "dig into what the change really means before moving",
		"collaborate": "check in with the people affected first",
		"optimize":    "look for the process that makes the transition clean",
	},
	fallback: "find a path that fits the new situation",
}

var adaptationExpressionClauses = clauseTable{
	byValue: map[string]string{
		"direct":    "name the change plainly so nobody is left guessing",
		"animated":  "keep spirits up while the dust settles",
		"attentive": "watch how others are coping and meet them there",
		"measured":  "turn uncertainty into calm, concrete updates",
	},
	fallback: "keep communication clear while things settle",
}

// ─── greeting / help / fallback variants ───

// Greeting, help and fallback each have exactly two variants, selected by
// profile presence alone.
const (
	greetingWithProfile = "Hello again! Your assessment is on file. Ask me about your signature, your strengths, what to improve, or how you work with a team."
	greetingNoProfile   = "Hello! I can walk you through your communication style once you complete the assessment. Say \"help\" to see what I can answer."

	helpWithProfile = "You can ask things like: what is my signature, what are my strengths, what could I improve, how do I work in a team, or how do I handle change."
	helpNoProfile   = "Complete the communication assessment first, then ask about your signature, strengths, improvements, teamwork, or adaptability. You can always say hello."
)

// fallbackSuggestions feed the no-profile fallback variant. One is chosen
// pseudo-randomly per reply by a package rng seeded once at first use; this
// is the composer's only non-deterministic output.
var fallbackSuggestions = []string{
	"Try saying \"hello\" to get started.",
	"Say \"help\" to see what I can answer.",
	"Complete the assessment to unlock answers about your style.",
}

var (
	suggestionRngOnce sync.Once
	suggestionRng     *rand.Rand
	suggestionRngMu   sync.Mutex
)

func pickSuggestion() string {
	suggestionRngOnce.Do(func() {
		suggestionRng = rand.New(rand.NewSource(time.Now().UnixNano()))
	})
	suggestionRngMu.Lock()
	defer suggestionRngMu.Unlock()
	return fallbackSuggestions[suggestionRng.Intn(len(fallbackSuggestions))]
}

// Compose renders the response text for one category. A nil profile selects
// the no-assessment variant where one exists; every trait lookup that
// misses degrades to its default fragment or clause.
func Compose(category Category, profile *TraitProfile) string {
	switch category {
	case CategorySignature:
		return composeSignature(profile)
	case CategoryStrengths:
		return composeStrengths(profile)
	case CategoryImprovement:
		return composeImprovement(profile)
	case CategoryTeam:
		return composeTeam(profile)
	case CategoryAdaptation:
		return composeAdaptation(profile)
	case CategoryGreeting:
		if profile != nil {
			return greetingWithProfile
		}
		return greetingNoProfile
	case CategoryHelp:
		if profile != nil {
			return helpWithProfile
		}
		return helpNoProfile
	default:
		return composeFallback(profile)
	}
}

func signatureOf(p *TraitProfile) string {
	if p == nil {
		return ""
	}
	return p.Signature
}

// composeSignature joins the four descriptions in fixed dimension order
// with connective prose.
func composeSignature(p *TraitProfile) string {
	return fmt.Sprintf(
		"Your communication signature is the %s. You %s in your approach to work, you %s in how you communicate, you %s when facing change, and you %s in how you process information.",
		signatureOf(p),
		Description(DimDrive, p.Value(DimDrive)),
		Description(DimExpression, p.Value(DimExpression)),
		Description(DimAdaptive, p.Value(DimAdaptive)),
		Description(DimIntelligence, p.Value(DimIntelligence)),
	)
}

func composeStrengths(p *TraitProfile) string {
	return fmt.Sprintf(
		"Your standout strengths: you %s, and you %s. %s",
		Strength(DimDrive, p.Value(DimDrive)),
		Strength(DimExpression, p.Value(DimExpression)),
		strengthAdaptiveClauses.clause(p.Value(DimAdaptive)),
	)
}

func composeImprovement(p *TraitProfile) string {
	return fmt.Sprintf(
		"A few areas worth your attention: you could %s, and you might %s.%s",
		Improvement(DimDrive, p.Value(DimDrive)),
		Improvement(DimExpression, p.Value(DimExpression)),
		improvementReassurance,
	)
}

func composeTeam(p *TraitProfile) string {
	return fmt.Sprintf(
		"In a team setting, you %s. You %s, and you %s.",
		teamDriveClauses.clause(p.Value(DimDrive)),
		teamExpressionClauses.clause(p.Value(DimExpression)),
		teamAdaptiveClauses.clause(p.Value(DimAdaptive)),
	)
}

func composeAdaptation(p *TraitProfile) string {
	return fmt.Sprintf(
		"When circumstances change, you %s. You %s, and you %s.",
		adaptationAdaptiveClauses.clause(p.Value(DimAdaptive)),
		adaptationDriveClauses.clause(p.Value(DimDrive)),
		adaptationExpressionClauses.clause(p.Value(DimExpression)),
	)
}

// composeFallback interpolates signature, drive and expression into the
// profile-present variant; the no-profile variant appends a suggestion.
func composeFallback(p *TraitProfile) string {
	if p != nil {
		return fmt.Sprintf(
			"I'm not sure what you're asking, but here is a quick reminder: you are the %s, with a %s drive and a %s expression style. Try asking about your strengths or how you adapt.",
			signatureOf(p),
			p.Value(DimDrive),
			p.Value(DimExpression),
		)
	}
	return "I didn't catch that. " + pickSuggestion()
}
