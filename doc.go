// Package phonsep asks whether the hidden layers of a speech-recognition
// network organise phone occurrences by phonetic feature, and how sure we
// can be that the organisation is not chance.
//
// What is phonsep?
//
//	A batch analysis library and CLI that brings together:
//		• Phonetics: the phone inventory, feature membership, feature hierarchies
//		• Segmentation: phone boundaries per word, converted to frame spans
//		• Activation: per-frame layer activations averaged per phone occurrence
//		• Cluster statistics: Fisher criterion, Davies–Bouldin, Silhouette, Dunn
//		• PCA: optional unsupervised reduction before testing
//		• Permutation tests: label-shuffle null distributions and strict-rank p-values
//		• Sweeps: systems × layers × labellings × measures from one YAML file
//
// Under the hood, everything is organised as one package per concern:
//
//	phonetics/      Phone, Feature, Hierarchy, Labelling
//	segmentation/   Record, Segment, Set and its JSON decoder
//	matrix/         row-major Dense, LU, Inverse, Covariance
//	activation/     Layer, Layers, Aggregate → View
//	cluster/        Measure, Statistic, Evaluator
//	pca/            Fit → Projection
//	permutation/    Run → Outcome, PValue, Shuffle
//	report/         ClusteringResult, Row, CSVWriter
//	sweep/          Config, FileSource, Run, WriteCSV
//	cmd/phonsep/    the command-line driver
//
// Data flow:
//
//	segmentation.Set + activation.Layers
//	    → activation.Aggregate          (per-occurrence means, silence dropped)
//	    → permutation.Run               (labelling filter, PCA, observed + null)
//	    → report.ClusteringResult       (value, p, "< 1/P" when beyond the null)
//	    → report.CSVWriter
//
//	go install github.com/katalvlaran/phonsep/cmd/phonsep@latest
package phonsep
