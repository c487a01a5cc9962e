// SPDX-License-Identifier: MIT

// Package segmentation holds the phone-boundary segmentation of a corpus:
// per word, the ordered list of labelled spans with their sample and frame
// coordinates.
//
// A Set is built once from external boundary records and is read-only
// afterwards; accessors hand out copies, so a Set is safe for concurrent use.
//
// Errors:
//
//	ErrEmptyWord     - a word key is the empty string.
//	ErrDuplicateWord - a boundary file lists the same word twice.
//	ErrUnknownWord   - a lookup named a word not in the set.
//	ErrBadSpan       - a record has a negative onset or offset < onset.
//	ErrBadFrameSize  - samples-per-frame is not positive.
//	phonetics.ErrUnknownPhone - a record label is not a phone symbol.
package segmentation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/phonsep/phonetics"
)

// Sentinel errors for segmentation construction and lookup.
var (
	// ErrEmptyWord indicates a record list keyed by "".
	ErrEmptyWord = errors.New("segmentation: empty word key")

	// ErrDuplicateWord indicates a word key repeated in a boundary file.
	ErrDuplicateWord = errors.New("segmentation: duplicate word")

	// ErrUnknownWord indicates a lookup of a word that is not in the set.
	ErrUnknownWord = errors.New("segmentation: unknown word")

	// ErrBadSpan indicates onset < 0 or offset < onset.
	ErrBadSpan = errors.New("segmentation: invalid segment span")

	// ErrBadFrameSize indicates a non-positive samples-per-frame divisor.
	ErrBadFrameSize = errors.New("segmentation: samples per frame must be > 0")
)

// DefaultSamplesPerFrame converts boundary sample indices into frame indices
// (10 ms frames expressed in 100 ns HTK time units).
const DefaultSamplesPerFrame int64 = 100_000

// Record is one boundary as supplied by an external segmentation source.
type Record struct {
	Onset  int64  `json:"onset"`
	Offset int64  `json:"offset"`
	Label  string `json:"label"`
}

// Segment is a labelled span of one word. Frame coordinates are derived as
// floor(sample / samplesPerFrame); the rows it covers in the word's
// activation matrix are the half-open range [OnsetFrame, OffsetFrame).
type Segment struct {
	OnsetSample  int64
	OffsetSample int64
	Label        phonetics.Phone
	OnsetFrame   int
	OffsetFrame  int
}

// Frames returns the number of activation rows covered by the segment.
func (s Segment) Frames() int { return s.OffsetFrame - s.OnsetFrame }

// String renders the segment for logs.
func (s Segment) String() string {
	return fmt.Sprintf("Segment(%s [%d,%d))", s.Label, s.OnsetFrame, s.OffsetFrame)
}

// Option customises New and Decode.
type Option func(*options)

type options struct {
	samplesPerFrame int64
}

func defaultOptions() options {
	return options{samplesPerFrame: DefaultSamplesPerFrame}
}

// WithSamplesPerFrame overrides DefaultSamplesPerFrame. n must be > 0.
func WithSamplesPerFrame(n int64) Option {
	return func(o *options) { o.samplesPerFrame = n }
}

// Set is an alphabetically ordered mapping word → segments.
type Set struct {
	words           []string
	segments        map[string][]Segment
	samplesPerFrame int64
}

// New validates and converts raw records into a Set. Segment order within a
// word is the record order.
func New(records map[string][]Record, opts ...Option) (*Set, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.samplesPerFrame <= 0 {
		return nil, fmt.Errorf("New: %d: %w", o.samplesPerFrame, ErrBadFrameSize)
	}

	s := &Set{
		words:           make([]string, 0, len(records)),
		segments:        make(map[string][]Segment, len(records)),
		samplesPerFrame: o.samplesPerFrame,
	}
	for word, recs := range records {
		if word == "" {
			return nil, fmt.Errorf("New: %w", ErrEmptyWord)
		}
		segs := make([]Segment, len(recs))
		for i, r := range recs {
			seg, err := newSegment(r, o.samplesPerFrame)
			if err != nil {
				return nil, fmt.Errorf("New: word %q segment %d: %w", word, i, err)
			}
			segs[i] = seg
		}
		s.words = append(s.words, word)
		s.segments[word] = segs
	}
	sort.Strings(s.words)

	return s, nil
}

func newSegment(r Record, samplesPerFrame int64) (Segment, error) {
	if r.Onset < 0 || r.Offset < r.Onset {
		return Segment{}, fmt.Errorf("[%d,%d]: %w", r.Onset, r.Offset, ErrBadSpan)
	}
	label, err := phonetics.PhoneByName(r.Label)
	if err != nil {
		return Segment{}, err
	}

	return Segment{
		OnsetSample:  r.Onset,
		OffsetSample: r.Offset,
		Label:        label,
		OnsetFrame:   int(r.Onset / samplesPerFrame),
		OffsetFrame:  int(r.Offset / samplesPerFrame),
	}, nil
}

// Words returns the word keys in ascending order.
func (s *Set) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)

	return out
}

// Segments returns a copy of the segments of word, in stored order.
func (s *Set) Segments(word string) ([]Segment, error) {
	segs, ok := s.segments[word]
	if !ok {
		return nil, fmt.Errorf("Segments(%q): %w", word, ErrUnknownWord)
	}
	out := make([]Segment, len(segs))
	copy(out, segs)

	return out, nil
}

// Len returns the number of words.
func (s *Set) Len() int { return len(s.words) }

// SamplesPerFrame returns the divisor used to derive frame coordinates.
func (s *Set) SamplesPerFrame() int64 { return s.samplesPerFrame }
