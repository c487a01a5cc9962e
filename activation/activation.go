// SPDX-License-Identifier: MIT

// Package activation turns per-word frame×node layer activations and a phone
// segmentation into the aggregated views the clustering statistics consume:
// per frame, per phone occurrence (segment mean) and per phone.
//
// Errors:
//
//	ErrUnknownLayer      - a layer name or value is not recognised.
//	ErrMissingWord       - a segmented word has no activation matrix.
//	ErrUnsegmentedWord   - an activation matrix has no segmentation (strict mode).
//	ErrFrameOutOfRange   - a segment ends beyond its word's last frame.
//	ErrEmptySegment      - a non-silence segment covers zero frames.
//	ErrNodeCountMismatch - words disagree on the number of nodes.
//	ErrNoOccurrences     - the segmentation has no non-silence segment.
package activation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/katalvlaran/phonsep/matrix"
)

// Sentinel errors for activation loading and aggregation.
var (
	// ErrUnknownLayer indicates an unrecognised layer identifier.
	ErrUnknownLayer = errors.New("activation: unknown layer")

	// ErrMissingWord indicates a word in the segmentation without activations.
	ErrMissingWord = errors.New("activation: no activations for word")

	// ErrUnsegmentedWord indicates activations for a word absent from the segmentation.
	ErrUnsegmentedWord = errors.New("activation: no segmentation for word")

	// ErrFrameOutOfRange indicates a segment offset frame beyond the matrix rows.
	ErrFrameOutOfRange = errors.New("activation: segment frame out of range")

	// ErrEmptySegment indicates a non-silence segment that covers no frame.
	ErrEmptySegment = errors.New("activation: segment covers zero frames")

	// ErrNodeCountMismatch indicates matrices with different column counts.
	ErrNodeCountMismatch = errors.New("activation: node count differs between words")

	// ErrNoOccurrences indicates there was nothing to aggregate.
	ErrNoOccurrences = errors.New("activation: no non-silence segments")
)

// Layers holds one layer's activations: word → frames×nodes matrix.
type Layers map[string]*matrix.Dense

// Words returns the keys in ascending order.
func (ls Layers) Words() []string {
	out := make([]string, 0, len(ls))
	for w := range ls {
		out = append(out, w)
	}
	sort.Strings(out)

	return out
}

// Nodes returns the common column count, or ErrNodeCountMismatch.
// An empty Layers has 0 nodes.
func (ls Layers) Nodes() (int, error) {
	nodes := -1
	for _, w := range ls.Words() {
		m := ls[w]
		if m == nil {
			return 0, fmt.Errorf("word %q: %w", w, matrix.ErrNilMatrix)
		}
		if nodes >= 0 && m.Cols() != nodes {
			return 0, fmt.Errorf("word %q has %d nodes, want %d: %w", w, m.Cols(), nodes, ErrNodeCountMismatch)
		}
		nodes = m.Cols()
	}
	if nodes < 0 {
		return 0, nil
	}

	return nodes, nil
}

// DecodeLayers reads a JSON object mapping each word to its activation rows,
//
//	{"cat": [[0.1, 0.7, ...], [0.2, 0.6, ...]], ...}
//
// Every word must have at least one row and all rows of all words the same
// length; NaN/Inf cannot be represented in JSON and are never produced.
func DecodeLayers(r io.Reader) (Layers, error) {
	var raw map[string][][]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("DecodeLayers: %w", err)
	}
	out := make(Layers, len(raw))
	for w, rows := range raw {
		m, err := matrix.NewDenseFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("DecodeLayers: word %q: %w", w, err)
		}
		out[w] = m
	}
	if _, err := out.Nodes(); err != nil {
		return nil, fmt.Errorf("DecodeLayers: %w", err)
	}

	return out, nil
}
