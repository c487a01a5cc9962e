// SPDX-License-Identifier: MIT

package activation

import (
	"fmt"
	"strconv"
)

// Layer identifies one layer of the acoustic model whose activations are
// analysed. Values 1..7 run from the filterbank input to the bottleneck.
type Layer int

// Layers of the network.
const (
	L1Filterbank Layer = iota + 1
	L2
	L3
	L4
	L5
	L6
	L7Bottleneck
)

// AllLayers returns L1Filterbank..L7Bottleneck in order.
func AllLayers() []Layer {
	return []Layer{L1Filterbank, L2, L3, L4, L5, L6, L7Bottleneck}
}

// Valid reports whether l is a known layer.
func (l Layer) Valid() bool { return l >= L1Filterbank && l <= L7Bottleneck }

// Value returns the numeric layer index.
func (l Layer) Value() int { return int(l) }

// Name returns the current file-naming form: "Layer1_FBK", "Layer2".."Layer6",
// "Layer7_BN". These sort alphabetically in layer order.
func (l Layer) Name() string {
	switch l {
	case L1Filterbank:
		return "Layer1_FBK"
	case L7Bottleneck:
		return "Layer7_BN"
	default:
		return "Layer" + strconv.Itoa(int(l))
	}
}

// OldName returns the legacy file-naming form: "FBK", "2".."6", "7BN".
func (l Layer) OldName() string {
	switch l {
	case L1Filterbank:
		return "FBK"
	case L7Bottleneck:
		return "7BN"
	default:
		return strconv.Itoa(int(l))
	}
}

// String returns Name().
func (l Layer) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Layer(%d)", int(l))
	}

	return l.Name()
}

// ParseLayer accepts any of Name(), OldName() or the decimal value.
func ParseLayer(s string) (Layer, error) {
	for _, l := range AllLayers() {
		if s == l.Name() || s == l.OldName() || s == strconv.Itoa(l.Value()) {
			return l, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, s)
}

// FileCandidates returns the names under which a layer's activation file may
// have been saved, in lookup order: Name, OldName, numeric value.
func (l Layer) FileCandidates() []string {
	return []string{l.Name(), l.OldName(), strconv.Itoa(l.Value())}
}
