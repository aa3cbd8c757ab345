// Package group provides deterministic key-based grouping and index-based
// aggregation.
//
// GroupBy and its variants sort a copy of the input by key and reduce each
// run of equal keys. FastAgg sums the entries of a dense Array into buckets
// along one axis, the way a bin count does for a vector; FastAgg2 derives the
// buckets from arbitrary tags.
package group
