package commsig

import "strings"

// ──────────────────────────────────────────────
// Intent Classification — ordered keyword rules
// ──────────────────────────────────────────────

// Category is the classifier's output bucket for one message.
type Category string

const (
	CategorySignature   Category = "signature-query"
	CategoryStrengths   Category = "strengths-query"
	CategoryImprovement Category = "improvement-query"
	CategoryTeam        Category = "team-query"
	CategoryAdaptation  Category = "adaptation-query"
	CategoryGreeting    Category = "greeting"
	CategoryHelp        Category = "help"
	CategoryFallback    Category = "fallback"
)

// allCategories lists every category, priority order first, fallback last.
var allCategories = []Category{
	CategorySignature,
	CategoryStrengths,
	CategoryImprovement,
	CategoryTeam,
	CategoryAdaptation,
	CategoryGreeting,
	CategoryHelp,
	CategoryFallback,
}

// intentRule binds one category to its trigger keywords. Rules are
// evaluated in slice order and the first match wins, so a message
// containing several triggers resolves to the highest-priority category,
// not the earliest substring position.
type intentRule struct {
	category        Category
	requiresProfile bool
	triggers        []string
}

// intentRules is the priority order. Matching is plain substring
// containment on the lower-cased message, no tokenization or word
// boundaries: "hi" matches inside "this".
var intentRules = []intentRule{
	{CategorySignature, true, []string{"signature", "what am i"}},
	{CategoryStrengths, true, []string{"strength", "good at"}},
	{CategoryImprovement, true, []string{"improve", "better"}},
	{CategoryTeam, true, []string{"team", "colleague"}},
	{CategoryAdaptation, true, []string{"adapt", "different"}},
	{CategoryGreeting, false, []string{"hello", "hi"}},
	{CategoryHelp, false, []string{"help"}},
}

// Classify maps a free-text message to exactly one category. Rules that
// need an assessment are skipped when hasProfile is false, so without a
// profile only greeting, help and fallback are reachable. Every input,
// including the empty string, resolves to a category.
func Classify(message string, hasProfile bool) Category {
	lower := strings.ToLower(message)
	for _, rule := range intentRules {
		if rule.requiresProfile && !hasProfile {
			continue
		}
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				return rule.category
			}
		}
	}
	return CategoryFallback
}
