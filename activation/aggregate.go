// SPDX-License-Identifier: MIT

package activation

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/phonsep/matrix"
	"github.com/katalvlaran/phonsep/phonetics"
	"github.com/katalvlaran/phonsep/segmentation"
)

// Weighting selects how per-phone means are formed.
type Weighting int

const (
	// OccurrenceWeighted averages the occurrence means of a phone; every
	// occurrence counts once regardless of its length.
	OccurrenceWeighted Weighting = iota

	// FrameWeighted averages every frame of every occurrence of a phone, so
	// long occurrences weigh more.
	FrameWeighted
)

// String names the weighting.
func (w Weighting) String() string {
	if w == FrameWeighted {
		return "frame"
	}

	return "occurrence"
}

// Samples pairs an observation matrix with its phone labels: row i of
// Activations is labelled Labels[i].
type Samples struct {
	Activations *matrix.Dense
	Labels      []phonetics.Phone
}

// Len returns the number of observations.
func (s Samples) Len() int { return len(s.Labels) }

// View is the aggregation of one layer over a segmentation. Silence
// contributes to none of its parts.
type View struct {
	// PerFrame has one row per frame of every non-silence segment.
	PerFrame Samples
	// PerOccurrence has one row per non-silence segment: the mean over its frames.
	PerOccurrence Samples
	// PerPhone maps each phone seen to its mean activation vector.
	PerPhone map[phonetics.Phone][]float64
}

// AggregateOption customises Aggregate.
type AggregateOption func(*aggregateOptions)

type aggregateOptions struct {
	weighting   Weighting
	ignoreExtra bool
}

// WithPerPhoneWeighting selects the per-phone mean (default OccurrenceWeighted).
func WithPerPhoneWeighting(w Weighting) AggregateOption {
	return func(o *aggregateOptions) { o.weighting = w }
}

// WithIgnoreExtraWords tolerates activation matrices for words that the
// segmentation does not mention; by default they are an error.
func WithIgnoreExtraWords() AggregateOption {
	return func(o *aggregateOptions) { o.ignoreExtra = true }
}

// Aggregate builds the three views of layers over set.
//
// Implementation:
//   - Stage 1: check the word sets of set and layers agree (ErrMissingWord,
//     ErrUnsegmentedWord) and that all matrices share one node count.
//   - Stage 2: walk words alphabetically and segments in stored order,
//     skipping silence; each segment covers rows [OnsetFrame, OffsetFrame).
//     Its frames are appended to the per-frame view and their mean to the
//     per-occurrence view.
//   - Stage 3: finalise per-phone means under the configured weighting.
//
// Errors:
//   - ErrMissingWord, ErrUnsegmentedWord, ErrNodeCountMismatch,
//     ErrFrameOutOfRange, ErrEmptySegment, ErrNoOccurrences.
//
// Determinism:
//   - Output order is fully determined by the sorted word list and segment order.
//
// Complexity:
//   - Time O(F*D) where F is the number of non-silence frames, Space O(F*D).
func Aggregate(set *segmentation.Set, layers Layers, opts ...AggregateOption) (*View, error) {
	o := aggregateOptions{weighting: OccurrenceWeighted}
	for _, opt := range opts {
		opt(&o)
	}

	// Stage 1: word coverage and shape.
	words := set.Words()
	segmented := make(map[string]bool, len(words))
	nodes := -1
	for _, w := range words {
		segmented[w] = true
		m, ok := layers[w]
		if !ok || m == nil {
			return nil, fmt.Errorf("Aggregate: %q: %w", w, ErrMissingWord)
		}
		if nodes >= 0 && m.Cols() != nodes {
			return nil, fmt.Errorf("Aggregate: %q has %d nodes, want %d: %w", w, m.Cols(), nodes, ErrNodeCountMismatch)
		}
		nodes = m.Cols()
	}
	if !o.ignoreExtra {
		for _, w := range layers.Words() {
			if !segmented[w] {
				return nil, fmt.Errorf("Aggregate: %q: %w", w, ErrUnsegmentedWord)
			}
		}
	}
	if nodes < 0 {
		return nil, fmt.Errorf("Aggregate: %w", ErrNoOccurrences)
	}

	// Stage 2: walk the corpus.
	var (
		frameData, occData     []float64
		frameLabels, occLabels []phonetics.Phone
		phoneSum               = make(map[phonetics.Phone][]float64)
		phoneCount             = make(map[phonetics.Phone]int)
	)
	for _, w := range words {
		m := layers[w]
		segs, err := set.Segments(w)
		if err != nil {
			return nil, fmt.Errorf("Aggregate: %w", err)
		}
		for i, seg := range segs {
			if seg.Label.IsSilence() {
				continue
			}
			if seg.OffsetFrame > m.Rows() {
				return nil, fmt.Errorf("Aggregate: %q segment %d ends at frame %d of %d: %w",
					w, i, seg.OffsetFrame, m.Rows(), ErrFrameOutOfRange)
			}
			if seg.Frames() <= 0 {
				return nil, fmt.Errorf("Aggregate: %q segment %d (%s): %w", w, i, seg.Label, ErrEmptySegment)
			}

			sum, ok := phoneSum[seg.Label]
			if !ok {
				sum = make([]float64, nodes)
				phoneSum[seg.Label] = sum
			}
			mean := make([]float64, nodes)
			for r := seg.OnsetFrame; r < seg.OffsetFrame; r++ {
				row, err := m.RowView(r)
				if err != nil {
					return nil, fmt.Errorf("Aggregate: %q: %w", w, err)
				}
				frameData = append(frameData, row...)
				frameLabels = append(frameLabels, seg.Label)
				floats.Add(mean, row)
				if o.weighting == FrameWeighted {
					floats.Add(sum, row)
					phoneCount[seg.Label]++
				}
			}
			floats.Scale(1/float64(seg.Frames()), mean)
			occData = append(occData, mean...)
			occLabels = append(occLabels, seg.Label)
			if o.weighting == OccurrenceWeighted {
				floats.Add(sum, mean)
				phoneCount[seg.Label]++
			}
		}
	}
	if len(occLabels) == 0 {
		return nil, fmt.Errorf("Aggregate: %w", ErrNoOccurrences)
	}

	// Stage 3: assemble.
	perFrame, err := matrix.NewDenseFrom(len(frameLabels), nodes, frameData)
	if err != nil {
		return nil, fmt.Errorf("Aggregate: per-frame: %w", err)
	}
	perOcc, err := matrix.NewDenseFrom(len(occLabels), nodes, occData)
	if err != nil {
		return nil, fmt.Errorf("Aggregate: per-occurrence: %w", err)
	}
	for p, sum := range phoneSum {
		floats.Scale(1/float64(phoneCount[p]), sum)
	}

	return &View{
		PerFrame:      Samples{Activations: perFrame, Labels: frameLabels},
		PerOccurrence: Samples{Activations: perOcc, Labels: occLabels},
		PerPhone:      phoneSum,
	}, nil
}
