// Package split partitions item streams and integer ranges into chunks.
//
// BlockSplitter groups a keyed, weighted stream greedily into
// weighted.Sequence chunks that are homogeneous in key and bounded in weight.
// SplitInBlocks sorts a finite slice and picks the weight bound so that about
// hint chunks come out. SplitInSlices and GenSlices partition plain integer
// ranges into half-open Slice values.
//
// Chunk streams are lazy and single-use: ranging over one a second time
// yields nothing.
//
//	chunks, err := split.BlockSplitter(slices.Values(items), 3, weightOf, kindOf)
//	if err != nil {
//	    return err
//	}
//	for chunk, err := range chunks {
//	    if err != nil {
//	        return err
//	    }
//	    dispatch(chunk)
//	}
package split
