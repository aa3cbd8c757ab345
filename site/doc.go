// Package site provides Collection, the reference set of sites that sources
// are filtered against.
//
// A Collection holds parallel longitude/latitude arrays with stable integer
// ids. Subsets produced by Filter keep a pointer to the complete collection
// they were taken from, so ids always resolve against the same points.
package site
