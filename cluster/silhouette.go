// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"
	"math"

	"github.com/katalvlaran/phonsep/matrix"
)

const opSilhouette = "SilhouetteScore"

// SilhouetteScore returns the mean silhouette coefficient over all
// observations (higher is better, range [-1, 1]) with Euclidean distance.
//
// For observation i in cluster A:
//
//	a(i) = mean distance to the other members of A
//	b(i) = min over clusters B ≠ A of the mean distance to members of B
//	s(i) = (b − a) / max(a, b)
//
// s(i) is 0 when A is a singleton or when a = b = 0.
//
// Errors:
//   - ErrLabelMismatch, ErrTooFewClusters, ErrTooManyClusters (K ≥ N),
//     matrix.ErrNilMatrix.
//
// Complexity:
//   - Time O(N²·D), Space O(K).
func SilhouetteScore(X *matrix.Dense, labels []int) (float64, error) {
	p, rows, err := checkInput(X, labels)
	if err != nil {
		return 0, clusterErrorf(opSilhouette, err)
	}
	s, err := silhouette(directDistances{rows: rows}, p)
	if err != nil {
		return 0, clusterErrorf(opSilhouette, err)
	}

	return s, nil
}

func silhouette(dist pairwise, p partition) (float64, error) {
	n := dist.n()
	k := p.k()
	if k >= n {
		return 0, fmt.Errorf("%d clusters for %d observations: %w", k, n, ErrTooManyClusters)
	}

	sums := make([]float64, k)
	var total float64
	var a, b, m float64
	for i := 0; i < n; i++ {
		own := p.assign[i]
		if p.counts[own] == 1 {
			continue
		}
		for c := range sums {
			sums[c] = 0
		}
		for j := 0; j < n; j++ {
			if j != i {
				sums[p.assign[j]] += dist.dist(i, j)
			}
		}
		a = sums[own] / float64(p.counts[own]-1)
		b = math.Inf(1)
		for c := 0; c < k; c++ {
			if c != own {
				b = math.Min(b, sums[c]/float64(p.counts[c]))
			}
		}
		if m = math.Max(a, b); m > 0 {
			total += (b - a) / m
		}
	}

	return total / float64(n), nil
}
