// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/phonsep/matrix"
)

// partition groups observation indices by label.
//
//   - classes holds the distinct labels in ascending order.
//   - assign[i] is the index into classes of observation i.
//   - counts[k] is the size of class k (always ≥ 1).
type partition struct {
	classes []int
	assign  []int
	counts  []int
}

// k returns the number of clusters.
func (p partition) k() int { return len(p.classes) }

// newPartition validates labels against n observations and groups them.
// Fewer than two distinct labels is ErrTooFewClusters.
func newPartition(n int, labels []int) (partition, error) {
	if len(labels) != n {
		return partition{}, fmt.Errorf("%d labels for %d rows: %w", len(labels), n, ErrLabelMismatch)
	}
	index := make(map[int]int)
	for _, l := range labels {
		index[l] = 0
	}
	classes := make([]int, 0, len(index))
	for l := range index {
		classes = append(classes, l)
	}
	sort.Ints(classes)
	if len(classes) < 2 {
		return partition{}, fmt.Errorf("%d distinct label(s): %w", len(classes), ErrTooFewClusters)
	}
	for k, l := range classes {
		index[l] = k
	}

	p := partition{
		classes: classes,
		assign:  make([]int, n),
		counts:  make([]int, len(classes)),
	}
	for i, l := range labels {
		k := index[l]
		p.assign[i] = k
		p.counts[k]++
	}

	return p, nil
}

// members returns the row indices of each class, in row order.
func (p partition) members() [][]int {
	out := make([][]int, p.k())
	for k, c := range p.counts {
		out[k] = make([]int, 0, c)
	}
	for i, k := range p.assign {
		out[k] = append(out[k], i)
	}

	return out
}

// rowsOf returns aliasing row slices of X, one per observation.
func rowsOf(X *matrix.Dense) ([][]float64, error) {
	rows := make([][]float64, X.Rows())
	for i := range rows {
		r, err := X.RowView(i)
		if err != nil {
			return nil, err
		}
		rows[i] = r
	}

	return rows, nil
}

// centroids returns the mean vector of each class.
func centroids(rows [][]float64, d int, p partition) [][]float64 {
	c := make([][]float64, p.k())
	for k := range c {
		c[k] = make([]float64, d)
	}
	for i, row := range rows {
		floats.Add(c[p.assign[i]], row)
	}
	for k := range c {
		floats.Scale(1/float64(p.counts[k]), c[k])
	}

	return c
}

// checkInput is the shared entry validation of every statistic.
func checkInput(X *matrix.Dense, labels []int) (partition, [][]float64, error) {
	if X == nil {
		return partition{}, nil, matrix.ErrNilMatrix
	}
	p, err := newPartition(X.Rows(), labels)
	if err != nil {
		return partition{}, nil, err
	}
	rows, err := rowsOf(X)
	if err != nil {
		return partition{}, nil, err
	}

	return p, rows, nil
}
