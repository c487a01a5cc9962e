// SPDX-License-Identifier: MIT

package phonetics

import "fmt"

// Phone inventory. Values are stable and match the class ids produced by
// PhoneLabelling.
const (
	Sil Phone = iota
	AA
	AE
	AH
	AO
	AW
	AY
	B
	CH
	D
	EA
	EH
	ER
	EY
	F
	G
	HH
	IA
	IH
	IY
	JH
	K
	L
	M
	N
	NG
	OH
	OW
	OY
	P
	R
	S
	SH
	T
	TH
	UA
	UH
	UW
	V
	W
	Y
	Z

	numPhones
)

// NumPhones is the size of the inventory including silence.
const NumPhones = int(numPhones)

var phoneSymbols = [numPhones]string{
	"sil", "aa", "ae", "ah", "ao", "aw", "ay", "b", "ch", "d",
	"ea", "eh", "er", "ey", "f", "g", "hh", "ia", "ih", "iy",
	"jh", "k", "l", "m", "n", "ng", "oh", "ow", "oy", "p",
	"r", "s", "sh", "t", "th", "ua", "uh", "uw", "v", "w",
	"y", "z",
}

var phoneBySymbol = func() map[string]Phone {
	m := make(map[string]Phone, numPhones)
	for i, s := range phoneSymbols {
		m[s] = Phone(i)
	}
	return m
}()

// PhoneByName returns the phone whose symbol is name.
func PhoneByName(name string) (Phone, error) {
	p, ok := phoneBySymbol[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPhone, name)
	}

	return p, nil
}

// AllPhones returns every phone, silence first, in value order.
func AllPhones() []Phone {
	out := make([]Phone, numPhones)
	for i := range out {
		out[i] = Phone(i)
	}

	return out
}

// Valid reports whether p is inside the inventory.
func (p Phone) Valid() bool { return p < numPhones }

// IsSilence reports whether p is the silence symbol.
func (p Phone) IsSilence() bool { return p == Sil }

// String returns the phone symbol, or "Phone(n)" outside the inventory.
func (p Phone) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Phone(%d)", uint8(p))
	}

	return phoneSymbols[p]
}

// Features returns the features whose membership table contains p, in
// feature value order. Silence belongs to no feature.
func (p Phone) Features() []Feature {
	if !p.Valid() || p == Sil {
		return nil
	}
	var out []Feature
	for f := Feature(1); f < numFeatures; f++ {
		if membership[f][p] {
			out = append(out, f)
		}
	}

	return out
}

// HasFeature reports whether p is a member of f.
func (p Phone) HasFeature(f Feature) bool {
	if !p.Valid() || !f.Valid() {
		return false
	}

	return membership[f][p]
}
