// Package weighted provides Sequence, an ordered container of items that
// keeps a running total weight.
//
// A Sequence is the chunk type produced by the split package: every mutation
// keeps Weight equal to the sum of the per-item weights, two sequences
// concatenate into a new one with the summed weight, and sequences order by
// weight only.
//
//	seq := weighted.NewEmpty[string]()
//	_ = seq.Append("A", 1)
//	_ = seq.Append("B", 2)
//	seq.Weight() // 3
package weighted
