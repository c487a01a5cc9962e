// SPDX-License-Identifier: MIT

// Package phonetics defines the closed phone and feature inventories, the
// phone×feature membership table, the feature hierarchies (place, manner,
// front, close and their vowel/consonant combinations), and the labelling
// functions that map phones to integer classes.
//
// All tables are immutable package data built once at init; every lookup is
// an array index and safe for concurrent use.
//
// Errors:
//
//	ErrUnknownPhone     - a phone symbol is not in the inventory.
//	ErrUnknownFeature   - a feature name is not in the inventory.
//	ErrUnknownHierarchy - a hierarchy name is not recognised.
//	ErrUnknownLabelling - a labelling name is not recognised.
//	ErrNotApplicable    - a phone has no feature in the requested hierarchy.
package phonetics

import "errors"

// Sentinel errors for phonetic lookups.
var (
	// ErrUnknownPhone indicates a phone symbol outside the inventory.
	ErrUnknownPhone = errors.New("phonetics: unknown phone")

	// ErrUnknownFeature indicates a feature name outside the inventory.
	ErrUnknownFeature = errors.New("phonetics: unknown feature")

	// ErrUnknownHierarchy indicates an unrecognised hierarchy name.
	ErrUnknownHierarchy = errors.New("phonetics: unknown hierarchy")

	// ErrUnknownLabelling indicates an unrecognised labelling name.
	ErrUnknownLabelling = errors.New("phonetics: unknown labelling")

	// ErrNotApplicable indicates the phone has no value in the requested hierarchy.
	ErrNotApplicable = errors.New("phonetics: hierarchy not applicable to phone")
)

// Phone is one symbol of the closed phone inventory. Sil (value 0) is the
// designated silence symbol; the remaining 41 phones take values 1..41 in
// alphabetical order of their symbols.
type Phone uint8

// Feature is a phonological property. Values start at 1 so the zero value
// never names a real feature.
type Feature uint8

// Hierarchy is a family of mutually exclusive features. A phone maps to at
// most one feature per hierarchy.
type Hierarchy uint8

// Hierarchies.
const (
	// Place: labial, coronal or dorsal (consonants only).
	Place Hierarchy = iota
	// Manner: nasal, stop, affricate, fricative or approximant (consonants only).
	Manner
	// Front: front, central or back (vowels only).
	Front
	// Close: close, close_mid, open_mid or open (vowels only).
	Close
	// PlaceFront: Front for vowels, Place for consonants.
	PlaceFront
	// MannerClose: Close for vowels, Manner for consonants.
	MannerClose

	numHierarchies
)
