// Package model provides the data types shared by every stage of the table
// recovery pipeline.
//
// # Geometry
//
// All coordinates are integer pixel positions with the origin at the
// top-left corner of the page image:
//
//   - [Region] - an axis-aligned rectangle, clipped to the image by [ClipRegion]
//   - [ColumnSet] - the ordered column bands of a page, with a Fallback flag
//   - [RowBand] - boxes clustered into one logical table row
//
// # Recognition
//
// [TextToken] is what a recognition engine returns for a region: a box, the
// text, and a confidence in [0, 1]. [CellValue] is the typed outcome of
// normalizing one such string.
//
// # Tables
//
// [Schema] describes the expected columns; [StatementSchema] is the
// Date/Open/High/Low/Close/Volume layout. [Table] holds the assembled
// [Row] values and exports them:
//
//	md := table.ToMarkdown()
//	csv := table.ToCSV()
//	data, err := table.ToJSON()
package model
