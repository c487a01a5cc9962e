// SPDX-License-Identifier: MIT

package phonetics

import "fmt"

// Labelling maps a phone to an integer class id. ok is false when the phone
// has no class under this labelling; such occurrences are dropped before any
// statistic is computed.
type Labelling func(p Phone) (class int, ok bool)

// PhoneLabelling assigns every non-silence phone its own class (its value).
func PhoneLabelling(p Phone) (int, bool) {
	if !p.Valid() || p == Sil {
		return 0, false
	}

	return int(p), true
}

// HierarchyLabelling classes each phone by its feature in h (class = feature
// value); phones outside h are not applicable.
func HierarchyLabelling(h Hierarchy) Labelling {
	return func(p Phone) (int, bool) {
		f, ok := p.HierarchyFeature(h)
		if !ok {
			return 0, false
		}
		return int(f), true
	}
}

// PhoneLabellingName is the name under which LabellingByName returns PhoneLabelling.
const PhoneLabellingName = "phone"

// LabellingNames lists every name accepted by LabellingByName.
func LabellingNames() []string {
	out := []string{PhoneLabellingName}
	for h := Hierarchy(0); h < numHierarchies; h++ {
		out = append(out, h.String())
	}

	return out
}

// LabellingByName returns "phone" or any hierarchy name as a Labelling.
func LabellingByName(name string) (Labelling, error) {
	if name == PhoneLabellingName {
		return PhoneLabelling, nil
	}
	h, err := HierarchyByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabelling, name)
	}

	return HierarchyLabelling(h), nil
}
