package player

import "testing"

func TestIdentityResolver_Same(t *testing.T) {
	r := NewIdentityResolver(nil)

	t.Run("substring matches in both directions", func(t *testing.T) {
		if !r.Same("Galan", "Alejandro Galan") {
			t.Fatal("expected surname to match full name")
		}
		if !r.Same("Alejandro Galan", "galan") {
			t.Fatal("expected full name to match surname, case-insensitive")
		}
	})

	t.Run("unrelated names do not match", func(t *testing.T) {
		if r.Same("Tapia", "Coello") {
			t.Fatal("unexpected match")
		}
	})

	t.Run("empty never matches", func(t *testing.T) {
		if r.Same("", "Galan") || r.Same("", "") {
			t.Fatal("empty name must not match")
		}
	})
}

func TestIdentityResolver_Aliases(t *testing.T) {
	r := NewIdentityResolver(map[string]string{
		"Ale Galan": "Alejandro Galan",
	})

	if !r.Same("Ale Galan", "Alejandro Galan") {
		t.Fatal("expected alias to resolve to canonical name")
	}
}

func TestIdentityResolver_TeamsEqual(t *testing.T) {
	r := NewIdentityResolver(nil)

	if !r.TeamsEqual([]string{"Galan", "Chingotto"}, []string{"Federico Chingotto", "Alejandro Galan"}) {
		t.Fatal("expected order-insensitive fuzzy team equality")
	}
	if r.TeamsEqual([]string{"Galan", "Chingotto"}, []string{"Galan", "Tapia"}) {
		t.Fatal("different pairs must not be equal")
	}
	if r.TeamsEqual([]string{"Galan"}, []string{"Galan", "Chingotto"}) {
		t.Fatal("different sizes must not be equal")
	}
}

func TestIdentityResolver_Partner(t *testing.T) {
	r := NewIdentityResolver(nil)

	partner, ok := r.Partner([]string{"Agustin Tapia", "Arturo Coello"}, "Tapia")
	if !ok || partner != "Arturo Coello" {
		t.Fatalf("partner = %q ok=%v, want Arturo Coello", partner, ok)
	}

	if _, ok := r.Partner([]string{"Galan", "Chingotto"}, "Tapia"); ok {
		t.Fatal("expected no partner when player not on team")
	}
}
