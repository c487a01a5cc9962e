// SPDX-License-Identifier: MIT

package cluster

import (
	"math"

	"github.com/katalvlaran/phonsep/matrix"
)

const opDunn = "DunnIndex"

// DunnIndex returns the Dunn index (higher is better): the smallest Euclidean
// distance between two points of different clusters divided by the largest
// distance between two points of the same cluster.
//
// Errors:
//   - ErrLabelMismatch, ErrTooFewClusters, matrix.ErrNilMatrix.
//   - ErrDegenerateClusters when every cluster has zero diameter.
//
// Complexity:
//   - Time O(N²·D), Space O(1) beyond the partition.
func DunnIndex(X *matrix.Dense, labels []int) (float64, error) {
	p, rows, err := checkInput(X, labels)
	if err != nil {
		return 0, clusterErrorf(opDunn, err)
	}
	v, err := dunn(directDistances{rows: rows}, p)
	if err != nil {
		return 0, clusterErrorf(opDunn, err)
	}

	return v, nil
}

func dunn(dist pairwise, p partition) (float64, error) {
	n := dist.n()
	minInter := math.Inf(1)
	maxDiameter := 0.0
	var d float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d = dist.dist(i, j)
			if p.assign[i] == p.assign[j] {
				if d > maxDiameter {
					maxDiameter = d
				}
			} else if d < minInter {
				minInter = d
			}
		}
	}
	if maxDiameter == 0 {
		return 0, ErrDegenerateClusters
	}

	return minInter / maxDiameter, nil
}
