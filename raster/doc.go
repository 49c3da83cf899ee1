// Package raster implements the pixel-level operations of the table
// recovery pipeline.
//
// Images enter as any [image.Image] and are reduced to single-channel
// intensity with [ToGray]. Binarization is always adaptive, because lighting
// varies across scanned and photographed pages:
//
//	mask := raster.AdaptiveThreshold(gray, raster.GaussianC, 31, 5)
//
// The resulting [Mask] marks ink cells. Rectangular morphology ([Dilate],
// [Erode], [Open]) and [ExternalBoxes] turn masks into candidate regions.
//
// [Preprocess] produces the recognition-ready page used for full-page
// transcripts, and [InkDensity] measures how much of a page is ink.
package raster
