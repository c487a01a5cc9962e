// SPDX-License-Identifier: MIT

package phonetics

import "fmt"

var hierarchyNames = [numHierarchies]string{
	Place:       "place",
	Manner:      "manner",
	Front:       "front",
	Close:       "close",
	PlaceFront:  "place_front",
	MannerClose: "manner_close",
}

// baseHierarchies lists, for each single hierarchy, the phones carrying each
// of its features. Phones absent from every entry are "not applicable".
var baseHierarchies = map[Hierarchy]map[Feature][]Phone{
	Place: {
		Labial:  {B, F, M, P, V},
		Coronal: {CH, D, JH, L, N, R, S, SH, T, TH, Y, Z},
		Dorsal:  {G, K, NG, W},
	},
	Manner: {
		Nasal:       {M, N, NG},
		Stop:        {B, D, G, K, P, T},
		Affricate:   {CH, JH},
		Fricative:   {F, S, SH, TH, V, Z},
		Approximant: {HH, L, R, W, Y},
	},
	Front: {
		FrontVowel: {AE, EA, EH, EY, IA, IH, IY},
		Central:    {AW, AY, ER, OW},
		Back:       {AA, AH, AO, OH, OY, UH, UA, UW},
	},
	Close: {
		CloseVowel: {IA, IH, IY, UA, UH, UW},
		CloseMid:   {OW},
		OpenMid:    {AE, AH, AO, EA, EH, ER, EY, OY},
		Open:       {AA, AW, AY, OH},
	},
}

// combined hierarchies: vowel table first, consonant table second.
var combinedHierarchies = map[Hierarchy][2]Hierarchy{
	PlaceFront:  {Front, Place},
	MannerClose: {Close, Manner},
}

// hierarchyTable[p][h] is the feature of phone p in hierarchy h, 0 when n/a.
var hierarchyTable = func() [numPhones][numHierarchies]Feature {
	var t [numPhones][numHierarchies]Feature
	for h, groups := range baseHierarchies {
		for f, phones := range groups {
			for _, p := range phones {
				if t[p][h] != 0 {
					panic(fmt.Sprintf("phonetics: phone %s listed twice in %s", p, hierarchyNames[h]))
				}
				t[p][h] = f
			}
		}
	}
	for h, parts := range combinedHierarchies {
		for p := Phone(1); p < numPhones; p++ {
			if f := t[p][parts[0]]; f != 0 {
				t[p][h] = f
			} else {
				t[p][h] = t[p][parts[1]]
			}
		}
	}
	return t
}()

// HierarchyByName parses "place", "manner", "front", "close", "place_front"
// or "manner_close".
func HierarchyByName(name string) (Hierarchy, error) {
	for h := Hierarchy(0); h < numHierarchies; h++ {
		if hierarchyNames[h] == name {
			return h, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownHierarchy, name)
}

// AllHierarchies returns every hierarchy in value order.
func AllHierarchies() []Hierarchy {
	out := make([]Hierarchy, numHierarchies)
	for i := range out {
		out[i] = Hierarchy(i)
	}

	return out
}

// Valid reports whether h is a known hierarchy.
func (h Hierarchy) Valid() bool { return h < numHierarchies }

// String returns the hierarchy name.
func (h Hierarchy) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Hierarchy(%d)", uint8(h))
	}

	return hierarchyNames[h]
}

// Features returns the features a phone can take in h, in value order.
func (h Hierarchy) Features() []Feature {
	if !h.Valid() {
		return nil
	}
	seen := make(map[Feature]bool)
	for p := Phone(1); p < numPhones; p++ {
		if f := hierarchyTable[p][h]; f != 0 {
			seen[f] = true
		}
	}
	out := make([]Feature, 0, len(seen))
	for f := Feature(1); f < numFeatures; f++ {
		if seen[f] {
			out = append(out, f)
		}
	}

	return out
}

// HierarchyFeature returns the feature of p in hierarchy h. The boolean is
// false when the hierarchy does not apply to p (silence, consonants in a
// vowel hierarchy, vowels and hh in Place, and so on). It never panics.
func (p Phone) HierarchyFeature(h Hierarchy) (Feature, bool) {
	if !p.Valid() || !h.Valid() {
		return 0, false
	}
	f := hierarchyTable[p][h]

	return f, f != 0
}

// MustHierarchyFeature is HierarchyFeature for callers that need a definite
// answer: an inapplicable hierarchy yields ErrNotApplicable.
func (p Phone) MustHierarchyFeature(h Hierarchy) (Feature, error) {
	f, ok := p.HierarchyFeature(h)
	if !ok {
		return 0, fmt.Errorf("%w: %s in %s", ErrNotApplicable, p, h)
	}

	return f, nil
}
