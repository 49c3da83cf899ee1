// Package reader loads page images for table extraction.
//
// Raster inputs (PNG, JPEG, TIFF, BMP, WebP) are decoded directly, with the
// EXIF orientation of camera photos applied. Scanned PDFs carry each page as
// an embedded image; [FirstPageImage] pulls the largest image off page one.
// Vector PDFs with no page image yield [ErrNoPageImage]: rendering vector
// content is outside this package.
//
//	img, err := reader.Load("statement.tif")
//	if errors.Is(err, reader.ErrUndecodable) {
//	    // the file exists but is not an image
//	}
package reader
