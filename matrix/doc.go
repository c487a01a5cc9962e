// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear algebra used by the phonsep
// analysis packages.
//
// The package offers:
//
//   - Dense, a row-major float64 matrix with bounds-checked accessors, row
//     views and row-subset extraction (used to hold frame×node activation
//     blocks and occurrence×node sample matrices).
//   - Kernels: Mul (PCA projection), TraceOfProduct and the rank-1 update
//     AddOuter (scatter matrices).
//   - Inverse through LU with partial pivoting. A relative singularity guard
//     plus an optional absolute floor make rank-deficient scatter matrices
//     fail loudly instead of producing huge garbage entries.
//   - Column statistics: ColumnMeans, CenterColumns, Covariance (sample,
//     denominator r-1).
//
// Determinism: every kernel uses fixed i→j→k loop orders and no map
// iteration, so identical inputs give bit-identical outputs on one platform.
//
// Errors are package sentinels (errors.go) wrapped with an operation tag;
// match them with errors.Is.
package matrix
