package commsig

import (
	"strings"
	"testing"
)

// ══════════════════════════════════════════════
// Compose tests
// ══════════════════════════════════════════════

func fullProfile() *TraitProfile {
	return &TraitProfile{
		Signature: "Driven Communicator",
		Traits: map[TraitDimension]string{
			DimDrive:        "action",
			DimExpression:   "direct",
			DimAdaptive:     "flexible",
			DimIntelligence: "analytical",
		},
	}
}

func junkProfile() *TraitProfile {
	return &TraitProfile{
		Signature: "Mystery Guest",
		Traits: map[TraitDimension]string{
			DimDrive:        "warp",
			DimExpression:   "telepathy",
			DimAdaptive:     "quantum",
			DimIntelligence: "alien",
		},
	}
}

func TestCompose_Signature(t *testing.T) {
	got := Compose(CategorySignature, fullProfile())
	expected := "Your communication signature is the Driven Communicator. " +
		"You move fast and push for results in your approach to work, " +
		"you get straight to the point in how you communicate, " +
		"you bend without breaking when facing change, " +
		"and you break problems into parts and test each one in how you process information."
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestCompose_SignatureUnknownValues(t *testing.T) {
	got := Compose(CategorySignature, junkProfile())
	if !strings.Contains(got, "Mystery Guest") {
		t.Fatalf("signature label missing: %q", got)
	}
	if n := strings.Count(got, "have a unique approach"); n != 4 {
		t.Fatalf("expected 4 default fragments, got %d in %q", n, got)
	}
}

func TestCompose_Strengths(t *testing.T) {
	got := Compose(CategoryStrengths, fullProfile())
	expected := "Your standout strengths: you turn plans into motion quickly, " +
		"and you leave no room for misunderstanding. " +
		"You also adapt smoothly when plans change."
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestCompose_StrengthsAdaptiveBranch(t *testing.T) {
	tests := []struct {
		adaptive string
		suffix   string
	}{
		{"flexible", "You also adapt smoothly when plans change."},
		{"steady", "You also bring welcome stability when everything else is shifting."},
		{"deliberate", "You also balance consistency with openness to change."},
		{"warp", "You also balance consistency with openness to change."},
		{"", "You also balance consistency with openness to change."},
	}

	for _, tt := range tests {
		p := fullProfile()
		p.Traits[DimAdaptive] = tt.adaptive
		got := Compose(CategoryStrengths, p)
		if !strings.HasSuffix(got, tt.suffix) {
			t.Errorf("adaptive=%q: expected suffix %q, got %q", tt.adaptive, tt.suffix, got)
		}
	}
}

func TestCompose_Improvement(t *testing.T) {
	got := Compose(CategoryImprovement, fullProfile())
	expected := "A few areas worth your attention: " +
		"you could pause to confirm direction before sprinting, " +
		"and you might soften delivery when stakes are personal. " +
		"Remember that these are growth opportunities, not flaws. " +
		"Your style already works for you."
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestCompose_ImprovementAlwaysReassures(t *testing.T) {
	const reassurance = "Remember that these are growth opportunities, not flaws. Your style already works for you."
	for _, p := range []*TraitProfile{fullProfile(), junkProfile(), {}} {
		got := Compose(CategoryImprovement, p)
		if !strings.HasSuffix(got, reassurance) {
			t.Errorf("missing reassurance in %q", got)
		}
	}
}

func TestCompose_Team(t *testing.T) {
	got := Compose(CategoryTeam, fullProfile())
	expected := "In a team setting, you push the group toward decisions and keep momentum high. " +
		"You say what needs saying without burying the point, " +
		"and you roll with shifting priorities without losing the thread."
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestCompose_TeamDefaultClauses(t *testing.T) {
	got := Compose(CategoryTeam, junkProfile())
	if !strings.Contains(got, "focus on keeping the team organized and efficient") {
		t.Fatalf("expected drive default clause, got %q", got)
	}
	if !strings.Contains(got, "communicate in a way the team can count on") {
		t.Fatalf("expected expression default clause, got %q", got)
	}
	if !strings.Contains(got, "help the team absorb change at a workable pace") {
		t.Fatalf("expected adaptive default clause, got %q", got)
	}
}

func TestCompose_Adaptation(t *testing.T) {
	got := Compose(CategoryAdaptation, fullProfile())
	expected := "When circumstances change, you adjust course quickly and rarely look back. " +
		"You treat the shift as a chance to act, " +
		"and you name the change plainly so nobody is left guessing."
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestCompose_AdaptationDefaultClauses(t *testing.T) {
	got := Compose(CategoryAdaptation, junkProfile())
	if !strings.Contains(got, "make thoughtful adjustments") {
		t.Fatalf("expected adaptive default clause, got %q", got)
	}
	if !strings.Contains(got, "find a path that fits the new situation") {
		t.Fatalf("expected drive default clause, got %q", got)
	}
}

func TestCompose_GreetingVariants(t *testing.T) {
	withProfile := Compose(CategoryGreeting, fullProfile())
	if !strings.Contains(withProfile, "Your assessment is on file") {
		t.Fatalf("unexpected greeting with profile: %q", withProfile)
	}

	noProfile := Compose(CategoryGreeting, nil)
	if !strings.Contains(noProfile, "once you complete the assessment") {
		t.Fatalf("unexpected greeting without profile: %q", noProfile)
	}
	if withProfile == noProfile {
		t.Fatal("greeting variants must differ")
	}

	// The variant depends on profile presence alone, not its content.
	if Compose(CategoryGreeting, junkProfile()) != withProfile {
		t.Fatal("any non-nil profile selects the profile variant")
	}
}

func TestCompose_HelpVariants(t *testing.T) {
	withProfile := Compose(CategoryHelp, fullProfile())
	if !strings.Contains(withProfile, "what is my signature") {
		t.Fatalf("unexpected help with profile: %q", withProfile)
	}

	noProfile := Compose(CategoryHelp, nil)
	if !strings.Contains(noProfile, "Complete the communication assessment first") {
		t.Fatalf("unexpected help without profile: %q", noProfile)
	}
	if withProfile == noProfile {
		t.Fatal("help variants must differ")
	}
}

func TestCompose_FallbackWithProfile(t *testing.T) {
	got := Compose(CategoryFallback, fullProfile())
	expected := "I'm not sure what you're asking, but here is a quick reminder: " +
		"you are the Driven Communicator, with a action drive and a direct expression style. " +
		"Try asking about your strengths or how you adapt."
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestCompose_FallbackNoProfile(t *testing.T) {
	suggestions := map[string]bool{
		"Try saying \"hello\" to get started.":                        true,
		"Say \"help\" to see what I can answer.":                      true,
		"Complete the assessment to unlock answers about your style.": true,
	}

	for i := 0; i < 50; i++ {
		got := Compose(CategoryFallback, nil)
		if !strings.HasPrefix(got, "I didn't catch that. ") {
			t.Fatalf("unexpected fallback prefix: %q", got)
		}
		suffix := strings.TrimPrefix(got, "I didn't catch that. ")
		if !suggestions[suffix] {
			t.Fatalf("unknown suggestion: %q", suffix)
		}
	}
}

func TestCompose_NilProfileIsTotal(t *testing.T) {
	// Trait categories with a nil profile still produce text.
	for _, cat := range []Category{
		CategorySignature, CategoryStrengths, CategoryImprovement,
		CategoryTeam, CategoryAdaptation,
	} {
		got := Compose(cat, nil)
		if got == "" {
			t.Errorf("Compose(%s, nil) returned empty text", cat)
		}
	}
}

func TestCompose_UnknownCategoryFallsBack(t *testing.T) {
	got := Compose(Category("made-up"), fullProfile())
	if !strings.HasPrefix(got, "I'm not sure what you're asking") {
		t.Fatalf("expected fallback text, got %q", got)
	}
}
