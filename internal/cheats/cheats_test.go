package cheats

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"exact match", "disco", true},
		{"uppercase", "DISCO", true},
		{"mixed case with spaces", "  DiScO  ", true},
		{"another catalog code", "wraith", true},
		{"unknown code", "konami", false},
		{"empty string", "", false},
		{"whitespace only", "   ", false},
		{"partial code", "disc", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValid(tc.input); got != tc.expected {
				t.Errorf("IsValid(%q) = %v, expected %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestToggleInvalidCode(t *testing.T) {
	active := NewSet("disco")

	next, res := Toggle("konami", active)

	if res.Valid || res.Activated {
		t.Errorf("Toggle(invalid) = %+v, expected neither valid nor activated", res)
	}
	if !next.Has("disco") || len(next) != 1 {
		t.Errorf("invalid toggle changed the set: %v", next.List())
	}
}

func TestToggleActivateAndDeactivate(t *testing.T) {
	empty := NewSet()

	on, res := Toggle("FROGGY", empty)
	if !res.Valid || !res.Activated {
		t.Fatalf("Toggle(FROGGY) = %+v, expected valid activation", res)
	}
	if !on.Has("froggy") {
		t.Error("froggy should be active after toggle")
	}

	off, res := Toggle("froggy", on)
	if !res.Valid || res.Activated {
		t.Fatalf("second Toggle(froggy) = %+v, expected valid deactivation", res)
	}
	if off.Has("froggy") || len(off) != 0 {
		t.Errorf("froggy should be inactive after second toggle, set: %v", off.List())
	}
}

func TestToggleSkinMutualExclusion(t *testing.T) {
	active := NewSet("disco")

	next, res := Toggle("midas", active)

	if !res.Valid || !res.Activated {
		t.Fatalf("Toggle(midas) = %+v, expected valid activation", res)
	}
	if next.Has("disco") {
		t.Error("activating midas should deactivate disco")
	}
	if !next.Has("midas") {
		t.Error("midas should be active")
	}
	if len(next) != 1 {
		t.Errorf("exactly one skin should be active, set: %v", next.List())
	}
}

func TestToggleIsPure(t *testing.T) {
	active := NewSet("vapor")

	Toggle("midas", active)
	Toggle("vapor", active)
	Toggle("bogus", active)

	if !active.Has("vapor") || len(active) != 1 {
		t.Errorf("input set was mutated: %v", active.List())
	}
}

func TestActiveSkin(t *testing.T) {
	if effect, ok := ActiveSkin(NewSet()); ok || effect != "" {
		t.Errorf("ActiveSkin(empty) = (%q, %v), expected none", effect, ok)
	}

	for _, c := range Catalog {
		set := NewSet(c.Code)
		effect, ok := ActiveSkin(set)
		if !ok || effect != c.Effect {
			t.Errorf("ActiveSkin(%s) = (%q, %v), expected (%q, true)", c.Code, effect, ok, c.Effect)
		}
	}
}

func TestNewSetSanitizesStoredCodes(t *testing.T) {
	// Codes come back from settings storage; stale or conflicting
	// entries must not survive the load.
	s := NewSet(" DISCO ", "froggy", "removed_code", "disco")

	if len(s) != 1 {
		t.Fatalf("expected one surviving code, got %v", s.List())
	}
	if !s.Has("disco") {
		t.Error("the first stored skin should win")
	}
	if effect, ok := ActiveSkin(s); !ok || effect != "rainbow" {
		t.Errorf("ActiveSkin = (%q, %v), expected (rainbow, true)", effect, ok)
	}
}

func TestSetList(t *testing.T) {
	s := NewSet("wraith")
	got := s.List()
	if len(got) != 1 || got[0] != "wraith" {
		t.Errorf("List() = %v, expected [wraith]", got)
	}

	if got := NewSet().List(); len(got) != 0 {
		t.Errorf("List() on empty set = %v, expected empty", got)
	}
}
