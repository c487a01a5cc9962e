// SPDX-License-Identifier: MIT

package permutation

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/phonsep/cluster"
)

// PValue ranks observed against null with the strict convention
// frac = #{v in null : v < observed} / len(null).
//
// For HigherIsBetter the p-value is 1 − frac and fellOffEnd reports
// observed > max(null); for LowerIsBetter it is frac and fellOffEnd reports
// observed < min(null). An empty null yields (NaN, false).
func PValue(null []float64, observed float64, dir cluster.Direction) (p float64, fellOffEnd bool) {
	if len(null) == 0 {
		return math.NaN(), false
	}
	below := 0
	for _, v := range null {
		if v < observed {
			below++
		}
	}
	frac := float64(below) / float64(len(null))

	if dir == cluster.LowerIsBetter {
		return frac, observed < floats.Min(null)
	}

	return 1 - frac, observed > floats.Max(null)
}

// Shuffle permutes labels in place with a Fisher–Yates pass driven by rng.
// The multiset of labels is unchanged.
func Shuffle(rng *rand.Rand, labels []int) {
	rng.Shuffle(len(labels), func(i, j int) { labels[i], labels[j] = labels[j], labels[i] })
}

// permutationRNG returns the generator for permutation i under seed.
func permutationRNG(seed uint64, i int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(i)))
}
