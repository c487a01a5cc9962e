// SPDX-License-Identifier: MIT

package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/phonsep/matrix"
)

const opDaviesBouldin = "DaviesBouldinIndex"

// DaviesBouldinIndex returns the Davies–Bouldin index (lower is better):
//
//	DB = (1/K) Σ_i max_{j≠i} (s_i + s_j) / d(c_i, c_j)
//
// where c_k is the centroid of cluster k and s_k the mean Euclidean distance
// of its members to c_k.
//
// Behavior highlights:
//   - If every s_k is 0, or every centroid distance is 0, the index is 0.
//   - Coincident centroids (d = 0) contribute nothing to the maximum.
//
// Errors:
//   - ErrLabelMismatch, ErrTooFewClusters, matrix.ErrNilMatrix.
//
// Complexity:
//   - Time O(N·D + K²·D), Space O(K·D).
func DaviesBouldinIndex(X *matrix.Dense, labels []int) (float64, error) {
	p, rows, err := checkInput(X, labels)
	if err != nil {
		return 0, clusterErrorf(opDaviesBouldin, err)
	}

	return daviesBouldin(rows, X.Cols(), p), nil
}

func daviesBouldin(rows [][]float64, d int, p partition) float64 {
	c := centroids(rows, d, p)
	k := p.k()

	intra := make([]float64, k)
	for i, row := range rows {
		intra[p.assign[i]] += floats.Distance(row, c[p.assign[i]], 2)
	}
	allIntraZero := true
	for j := range intra {
		intra[j] /= float64(p.counts[j])
		if intra[j] != 0 {
			allIntraZero = false
		}
	}

	centroidDist := make([][]float64, k)
	allCentroidZero := true
	for i := range centroidDist {
		centroidDist[i] = make([]float64, k)
		for j := range centroidDist[i] {
			if i == j {
				continue
			}
			centroidDist[i][j] = floats.Distance(c[i], c[j], 2)
			if centroidDist[i][j] != 0 {
				allCentroidZero = false
			}
		}
	}
	if allIntraZero || allCentroidZero {
		return 0
	}

	var sum float64
	for i := 0; i < k; i++ {
		best := 0.0
		for j := 0; j < k; j++ {
			if i == j || centroidDist[i][j] == 0 {
				continue
			}
			best = math.Max(best, (intra[i]+intra[j])/centroidDist[i][j])
		}
		sum += best
	}

	return sum / float64(k)
}
