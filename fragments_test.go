package commsig

import "testing"

// ══════════════════════════════════════════════
// Fragment table tests
// ══════════════════════════════════════════════

func TestDescription_KnownValues(t *testing.T) {
	tests := []struct {
		dim      TraitDimension
		value    string
		expected string
	}{
		{DimDrive, "action", "move fast and push for results"},
		{DimDrive, "optimize", "refine systems until they run clean"},
		{DimExpression, "direct", "get straight to the point"},
		{DimAdaptive, "steady", "hold a steady course"},
		{DimIntelligence, "strategic", "play the long game"},
	}

	for _, tt := range tests {
		if got := Description(tt.dim, tt.value); got != tt.expected {
			t.Errorf("Description(%s, %s) = %q, expected %q", tt.dim, tt.value, got, tt.expected)
		}
	}
}

func TestDescription_CanonicalAnalytical(t *testing.T) {
	// The table once carried two "analytical" entries; only the later
	// wording survives.
	got := Description(DimIntelligence, "analytical")
	expected := "break problems into parts and test each one"
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
	if got == "reason from the numbers first" {
		t.Fatal("shadowed wording must not resolve")
	}
}

func TestDescription_UnknownValue(t *testing.T) {
	if got := Description(DimDrive, "warp"); got != "have a unique approach" {
		t.Fatalf("expected default description, got %q", got)
	}
}

func TestDescription_UnknownDimension(t *testing.T) {
	if got := Description(TraitDimension("charisma"), "anything"); got != "have a unique approach" {
		t.Fatalf("expected default description, got %q", got)
	}
}

func TestStrength_KnownValues(t *testing.T) {
	tests := []struct {
		dim      TraitDimension
		value    string
		expected string
	}{
		{DimDrive, "action", "turn plans into motion quickly"},
		{DimDrive, "research", "ground decisions in solid evidence"},
		{DimExpression, "attentive", "make people feel genuinely heard"},
	}

	for _, tt := range tests {
		if got := Strength(tt.dim, tt.value); got != tt.expected {
			t.Errorf("Strength(%s, %s) = %q, expected %q", tt.dim, tt.value, got, tt.expected)
		}
	}
}

func TestStrength_DimensionDefaults(t *testing.T) {
	if got := Strength(DimDrive, "warp"); got != "bring focused energy to your work" {
		t.Fatalf("expected drive default, got %q", got)
	}
	if got := Strength(DimExpression, "warp"); got != "communicate in your own distinctive way" {
		t.Fatalf("expected expression default, got %q", got)
	}
}

func TestStrength_SparseDimensions(t *testing.T) {
	// Adaptive and intelligence have never carried strength entries; even
	// recognized values resolve to the shared default.
	if got := Strength(DimAdaptive, "flexible"); got != "have a unique approach" {
		t.Fatalf("expected shared default, got %q", got)
	}
	if got := Strength(DimIntelligence, "analytical"); got != "have a unique approach" {
		t.Fatalf("expected shared default, got %q", got)
	}
}

func TestImprovement_KnownValues(t *testing.T) {
	tests := []struct {
		dim      TraitDimension
		value    string
		expected string
	}{
		{DimDrive, "action", "pause to confirm direction before sprinting"},
		{DimDrive, "collaborate", "make the final call even without full agreement"},
		{DimExpression, "measured", "show a little more of your first reaction"},
	}

	for _, tt := range tests {
		if got := Improvement(tt.dim, tt.value); got != tt.expected {
			t.Errorf("Improvement(%s, %s) = %q, expected %q", tt.dim, tt.value, got, tt.expected)
		}
	}
}

func TestImprovement_DimensionDefaults(t *testing.T) {
	if got := Improvement(DimDrive, "warp"); got != "experiment with pacing your efforts" {
		t.Fatalf("expected drive default, got %q", got)
	}
	if got := Improvement(DimExpression, ""); got != "try varying how you deliver your message" {
		t.Fatalf("expected expression default, got %q", got)
	}
	if got := Improvement(DimAdaptive, "flexible"); got != "have a unique approach" {
		t.Fatalf("expected shared default, got %q", got)
	}
}

func TestValues_CanonicalOrder(t *testing.T) {
	drive := Values(DimDrive)
	expected := []string{"action", "research", "collaborate", "optimize"}
	if len(drive) != len(expected) {
		t.Fatalf("expected %d drive values, got %d", len(expected), len(drive))
	}
	for i := range expected {
		if drive[i] != expected[i] {
			t.Errorf("drive[%d] = %q, expected %q", i, drive[i], expected[i])
		}
	}

	if len(Values(DimAdaptive)) != 3 {
		t.Fatalf("expected 3 adaptive values, got %d", len(Values(DimAdaptive)))
	}
}

func TestValues_ReturnsCopy(t *testing.T) {
	vals := Values(DimDrive)
	vals[0] = "mutated"
	if Values(DimDrive)[0] != "action" {
		t.Fatal("Values must return a copy")
	}
}
