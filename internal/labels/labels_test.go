package labels

import "testing"

func TestPickExactMatch(t *testing.T) {
	got, ok := Pick(map[string]string{"en": "Age", "de": "Alter"}, "de")
	if !ok || got != "Alter" {
		t.Fatalf("got %q, %v", got, ok)
	}
}

func TestPickRegionalVariantCollapses(t *testing.T) {
	got, ok := Pick(map[string]string{"en": "Age", "fr": "Âge"}, "en-US")
	if !ok || got != "Age" {
		t.Fatalf("got %q, %v", got, ok)
	}
}

func TestPickFallsBackToEnglish(t *testing.T) {
	got, ok := Pick(map[string]string{"en": "Age", "de": "Alter"}, "")
	if !ok || got != "Age" {
		t.Fatalf("got %q, %v", got, ok)
	}
}

func TestPickNoLabels(t *testing.T) {
	if _, ok := Pick(nil, "en"); ok {
		t.Fatal("expected no label")
	}
}

func TestPickDeterministicWithoutMatch(t *testing.T) {
	byLang := map[string]string{"de": "Alter", "fr": "Âge"}
	first, _ := Pick(byLang, "ja")
	for i := 0; i < 10; i++ {
		got, _ := Pick(byLang, "ja")
		if got != first {
			t.Fatalf("nondeterministic pick: %q vs %q", got, first)
		}
	}
}

func TestLanguagesSorted(t *testing.T) {
	codes := Languages(map[string]string{"fr": "x", "de": "y", "en": "z"})
	want := []string{"de", "en", "fr"}
	for i, code := range codes {
		if code != want[i] {
			t.Fatalf("got %v, want %v", codes, want)
		}
	}
}
