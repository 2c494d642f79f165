// Package spritegrid slices raster sprite sheets into individual sprite
// rectangles and infers a uniform sampling grid from them.
//
// The work is split into small packages that form a pipeline:
//
//	mask        pixel buffer + background rule -> occupancy mask
//	components  occupancy mask -> bounding boxes (flood fill), box merging
//	grid        bounding boxes -> rows x cols grid -> uniform step/offset fit
//
// Package slicer chains the stages together. Decoding images, serializing
// the results and displaying them is left to sheetio, desc and imageprint
// respectively; the pipeline packages never touch files.
//
// This package only holds the error kinds shared by all the stages.
package spritegrid
