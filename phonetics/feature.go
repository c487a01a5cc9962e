// SPDX-License-Identifier: MIT

package phonetics

import "fmt"

// Feature inventory.
const (
	Sonorant Feature = iota + 1
	Voiced
	Syllabic
	Obstruent
	Labial
	Coronal
	Dorsal
	Stop
	Affricate
	Fricative
	Sibilant
	Approximant
	Nasal
	FrontVowel
	Central
	Back
	CloseVowel
	CloseMid
	OpenMid
	Open
	Rounded

	numFeatures
)

// NumFeatures is the number of features in the inventory.
const NumFeatures = int(numFeatures) - 1

var featureNames = [numFeatures]string{
	"", "sonorant", "voiced", "syllabic", "obstruent", "labial", "coronal",
	"dorsal", "stop", "affricate", "fricative", "sibilant", "approximant",
	"nasal", "front", "central", "back", "close", "close_mid", "open_mid",
	"open", "rounded",
}

// membershipRows holds one 0/1 string per feature; character j is the
// membership of phone j+1 (aa..z, silence excluded).
var membershipRows = [numFeatures]string{
	Sonorant:    "11111100011110001110011111110100001110110",
	Voiced:      "11111110111110101111011111110100001111111",
	Syllabic:    "11111100011110001110000001110000001110000",
	Obstruent:   "00000011100001110001111110001111110001001",
	Labial:      "00000010000001000000001000001000000001000",
	Coronal:     "00000001100000000001010100000111110000011",
	Dorsal:      "00000000000000100000100010000000000000100",
	Stop:        "00000010100000100000100000001000100000000",
	Affricate:   "00000001000000000001000000000000000000000",
	Fricative:   "00000000000001010000000000000011010001001",
	Sibilant:    "00000001000000000001000000000011000000001",
	Approximant: "00000000000000010000010000000100000000110",
	Nasal:       "00000000000000000000001110000000000000000",
	FrontVowel:  "01000100011010001110000000000000000000000",
	Central:     "00001100010100001000000000110000001000000",
	Back:        "10111000000000000000000001110000001110000",
	CloseVowel:  "00000100000000001110000000000000001110000",
	CloseMid:    "00001000000010001000000000110000000000000",
	OpenMid:     "01110000011110000000000000110000001000000",
	Open:        "10001100000000000000000001000000000000000",
	Rounded:     "00011000000000000000000001110000000110000",
}

// membership[f][p] is true when phone p belongs to feature f.
var membership = func() [numFeatures][numPhones]bool {
	var t [numFeatures][numPhones]bool
	for f := Feature(1); f < numFeatures; f++ {
		row := membershipRows[f]
		if len(row) != int(numPhones)-1 {
			panic(fmt.Sprintf("phonetics: membership row %s has %d entries", featureNames[f], len(row)))
		}
		for j := 0; j < len(row); j++ {
			t[f][j+1] = row[j] == '1'
		}
	}
	return t
}()

var featureByName = func() map[string]Feature {
	m := make(map[string]Feature, numFeatures)
	for f := Feature(1); f < numFeatures; f++ {
		m[featureNames[f]] = f
	}
	return m
}()

// FeatureByName returns the feature called name (e.g. "voiced", "close_mid").
func FeatureByName(name string) (Feature, error) {
	f, ok := featureByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}

	return f, nil
}

// AllFeatures returns the inventory in value order.
func AllFeatures() []Feature {
	out := make([]Feature, 0, NumFeatures)
	for f := Feature(1); f < numFeatures; f++ {
		out = append(out, f)
	}

	return out
}

// Valid reports whether f names a real feature.
func (f Feature) Valid() bool { return f >= 1 && f < numFeatures }

// String returns the feature name, or "Feature(n)" outside the inventory.
func (f Feature) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Feature(%d)", uint8(f))
	}

	return featureNames[f]
}

// Phones returns the members of f in phone value order.
func (f Feature) Phones() []Phone {
	if !f.Valid() {
		return nil
	}
	var out []Phone
	for p := Phone(1); p < numPhones; p++ {
		if membership[f][p] {
			out = append(out, p)
		}
	}

	return out
}
