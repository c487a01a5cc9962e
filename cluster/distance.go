// SPDX-License-Identifier: MIT

package cluster

import "gonum.org/v1/gonum/floats"

// DefaultDistanceCacheLimit is the largest number of observations for which
// an Evaluator materialises the pairwise distance table (N(N-1)/2 values).
const DefaultDistanceCacheLimit = 4096

// pairwise yields Euclidean distances between observations i and j.
type pairwise interface {
	n() int
	dist(i, j int) float64
}

// directDistances recomputes every distance from the rows.
type directDistances struct {
	rows [][]float64
}

func (d directDistances) n() int { return len(d.rows) }

func (d directDistances) dist(i, j int) float64 {
	return floats.Distance(d.rows[i], d.rows[j], 2)
}

// condensedDistances stores the strict upper triangle row by row:
// pair (i, j) with i<j lives at i*n - i*(i+1)/2 + (j-i-1).
type condensedDistances struct {
	size int
	data []float64
}

func newCondensedDistances(rows [][]float64) *condensedDistances {
	n := len(rows)
	c := &condensedDistances{size: n, data: make([]float64, n*(n-1)/2)}
	var i, j, at int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			c.data[at] = floats.Distance(rows[i], rows[j], 2)
			at++
		}
	}

	return c
}

func (c *condensedDistances) n() int { return c.size }

func (c *condensedDistances) dist(i, j int) float64 {
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}

	return c.data[i*c.size-i*(i+1)/2+(j-i-1)]
}
