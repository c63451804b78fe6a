package util

import "testing"

func TestNormalizeTagSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "VEGETARIAN", "vegetarian"},
		{"spaces to dashes", "slow cooker", "slow-cooker"},
		{"underscores to dashes", "slow_cooker", "slow-cooker"},
		{"already normalized", "slow-cooker", "slow-cooker"},

		// Whitespace handling
		{"trim whitespace", "  quick  ", "quick"},
		{"multiple spaces", "one   pot", "one-pot"},
		{"tabs and spaces", "one\t pot", "one-pot"},

		// Special characters
		{"emoji removal", "🌶️ Spicy!", "spicy"},
		{"slashes to dashes", "dairy free/gluten free", "dairy-free-gluten-free"},
		{"apostrophe removal", "kids' favorite", "kids-favorite"},

		// Dash handling
		{"multiple dashes", "one--pot", "one-pot"},
		{"leading dashes", "--quick", "quick"},
		{"trailing dashes", "quick--", "quick"},
		{"mixed dashes", "--one--pot--", "one-pot"},

		// Edge cases
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"only special chars", "!@#$%", ""},
		{"numbers allowed", "30min", "30min"},
		{"mixed case with numbers", "Under 30 Minutes", "under-30-minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTagSlug(tt.input); got != tt.expected {
				t.Errorf("NormalizeTagSlug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTagSlugs(t *testing.T) {
	got := NormalizeTagSlugs([]string{"Quick", "quick", "  ", "One Pot", "!!!", "ONE_POT"})
	want := []string{"quick", "one-pot"}

	if len(got) != len(want) {
		t.Fatalf("NormalizeTagSlugs returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slug %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizeTagSlugs_Empty(t *testing.T) {
	if got := NormalizeTagSlugs(nil); got != nil {
		t.Errorf("NormalizeTagSlugs(nil) = %v, want nil", got)
	}
}
