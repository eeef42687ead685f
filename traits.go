package commsig

// ──────────────────────────────────────────────
// Trait Model — assessment dimensions and values
// ──────────────────────────────────────────────

// TraitDimension is one of the four fixed axes of the communication-style
// assessment. The set is never extended at runtime.
type TraitDimension string

const (
	DimDrive        TraitDimension = "drive"
	DimExpression   TraitDimension = "expression"
	DimAdaptive     TraitDimension = "adaptive"
	DimIntelligence TraitDimension = "intelligence"
)

// Dimensions returns the four dimensions in canonical order.
func Dimensions() []TraitDimension {
	return []TraitDimension{DimDrive, DimExpression, DimAdaptive, DimIntelligence}
}

// traitValues lists the recognized values per dimension in canonical order.
// Survey tie-breaks resolve toward the earlier value (see ScoreSurvey).
var traitValues = map[TraitDimension][]string{
	DimDrive:        {"action", "research", "collaborate", "optimize"},
	DimExpression:   {"direct", "animated", "attentive", "measured"},
	DimAdaptive:     {"flexible", "steady", "deliberate"},
	DimIntelligence: {"analytical", "creative", "practical", "strategic"},
}

// Values returns the recognized values for dim in canonical order.
func Values(dim TraitDimension) []string {
	vals := traitValues[dim]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// TraitProfile is a user's assessed communication style: one value per
// dimension plus the derived signature label. The response engine treats
// the label as opaque, never validates where a profile came from, and
// never mutates one. Values it does not recognize simply miss the fragment
// tables and pick up default text.
type TraitProfile struct {
	Signature string                    `json:"signature"`
	Traits    map[TraitDimension]string `json:"traits"`
}

// Value returns the profile's value for dim. It is nil-safe: a nil profile,
// a nil map or a missing dimension all return "", which downstream lookups
// treat as an ordinary miss.
func (p *TraitProfile) Value(dim TraitDimension) string {
	if p == nil || p.Traits == nil {
		return ""
	}
	return p.Traits[dim]
}
