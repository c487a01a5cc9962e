// SPDX-License-Identifier: MIT

// Package permutation tests whether phone-occurrence activations cluster by a
// phonetic labelling more than chance would allow.
//
// Run is a single synchronous computation with five stages:
//
//	Configure  options are validated before any numeric work
//	Observe    rows the labelling does not cover are dropped, the matrix is
//	           optionally reduced by PCA, and the statistic is computed on the
//	           true labels
//	Null       the label vector is shuffled P times and the statistic
//	           recomputed on each shuffle
//	p-value    the observed value is ranked against the null distribution
//	Report     the result is returned as a report.ClusteringResult
//
// Ranking uses the strict convention: frac = #{null < observed} / P, so values
// tied with the observed statistic are not counted. For measures where higher
// is better p = 1 − frac; for Davies–Bouldin p = frac. When the observed value
// is beyond the whole null distribution the result is flagged FellOffEnd and
// its p-value should be read as "< 1/P".
//
// Determinism: permutation i shuffles with its own generator seeded from
// (seed, i), so the null distribution depends only on the seed, never on the
// number of workers or their scheduling.
package permutation
