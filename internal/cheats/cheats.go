// Package cheats implements the unlockable skin codes: validation,
// activation with mutual exclusion between skins, and lookup of the
// active skin effect. All operations are pure; the active set is data
// owned by the caller and persisted through settings.
package cheats

import "strings"

// CodeType classifies what a cheat code unlocks.
type CodeType int

const (
	// CodeTypeSkin swaps the player's appearance. Skins are mutually
	// exclusive: activating one deactivates any other active skin.
	CodeTypeSkin CodeType = iota
)

// Code is one entry of the static catalog.
type Code struct {
	Code   string // normalized input that unlocks it
	Name   string // display name
	Effect string // renderer effect identifier
	Type   CodeType
}

// Catalog is the full set of recognized codes, in display order.
// ActiveSkin scans it in this order, which keeps the pick deterministic.
var Catalog = []Code{
	{Code: "disco", Name: "Disco Fever", Effect: "rainbow", Type: CodeTypeSkin},
	{Code: "froggy", Name: "Frog Mode", Effect: "frog", Type: CodeTypeSkin},
	{Code: "vapor", Name: "Vaporwave", Effect: "vapor", Type: CodeTypeSkin},
	{Code: "midas", Name: "Midas Touch", Effect: "gold", Type: CodeTypeSkin},
	{Code: "wraith", Name: "Wraith", Effect: "ghost", Type: CodeTypeSkin},
}

// Set holds the normalized codes currently active.
type Set map[string]bool

// NewSet builds a set from stored codes, dropping anything no longer in
// the catalog and keeping only the first skin when several slipped into
// the stored list.
func NewSet(codes ...string) Set {
	s := make(Set, len(codes))
	for _, raw := range codes {
		norm := Normalize(raw)
		entry, ok := Find(norm)
		if !ok {
			continue
		}
		if entry.Type == CodeTypeSkin {
			if _, taken := ActiveSkin(s); taken {
				continue
			}
		}
		s[norm] = true
	}
	return s
}

// Has reports whether the code is active, normalizing the input.
func (s Set) Has(code string) bool {
	return s[Normalize(code)]
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	next := make(Set, len(s))
	for k, v := range s {
		if v {
			next[k] = true
		}
	}
	return next
}

// List returns the active codes in catalog order, for persistence and
// display. Codes no longer in the catalog are dropped.
func (s Set) List() []string {
	var out []string
	for _, c := range Catalog {
		if s[c.Code] {
			out = append(out, c.Code)
		}
	}
	return out
}

// Normalize maps raw player input to catalog form: trimmed, lowercase.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsValid reports whether the input matches a catalog code,
// case-insensitively and ignoring surrounding whitespace.
func IsValid(code string) bool {
	_, ok := Find(Normalize(code))
	return ok
}

// Find returns the catalog entry for a normalized code.
func Find(norm string) (Code, bool) {
	for _, c := range Catalog {
		if c.Code == norm {
			return c, true
		}
	}
	return Code{}, false
}

// Result reports what a Toggle did.
type Result struct {
	Valid     bool // the code exists in the catalog
	Activated bool // the code is active in the returned set
}

// Toggle flips a cheat code and returns the updated set. The input set
// is never mutated. Unknown codes return an unchanged copy. Activating
// a skin removes any other active skin first, so at most one skin is
// ever active.
func Toggle(code string, active Set) (Set, Result) {
	next := active.Clone()

	norm := Normalize(code)
	entry, ok := Find(norm)
	if !ok {
		return next, Result{}
	}

	if next[norm] {
		delete(next, norm)
		return next, Result{Valid: true}
	}

	if entry.Type == CodeTypeSkin {
		for _, c := range Catalog {
			if c.Type == CodeTypeSkin {
				delete(next, c.Code)
			}
		}
	}
	next[norm] = true
	return next, Result{Valid: true, Activated: true}
}

// ActiveSkin returns the effect of the active skin code. The catalog is
// scanned in declaration order; with mutual exclusion held, at most one
// entry can match. ok is false when no skin is active.
func ActiveSkin(active Set) (effect string, ok bool) {
	for _, c := range Catalog {
		if c.Type == CodeTypeSkin && active[c.Code] {
			return c.Effect, true
		}
	}
	return "", false
}
