// Package evaluate scores extracted tables and transcripts against ground
// truth.
//
// Text measures:
//
//   - [CharacterAccuracy]: similarity ratio of the raw strings (matching
//     blocks, not edit distance) as a percentage
//   - [WordAccuracy]: share of ground-truth words found in the prediction
//
// Table measures pair rows by position, never by key:
//
//   - [FieldAccuracy]: fields equal after two-decimal rounding
//   - [NumericAccuracy]: price and volume fields within a relative tolerance
//   - [RowAccuracy]: rows whose every field matches
//
// Every measure is a pure function. A value that fails to convert counts as
// a mismatch; nothing panics on malformed input.
//
// Ground truth can be loaded from CSV, JSON, HTML or plain-text tables with
// [LoadRecords]:
//
//	gt, err := evaluate.LoadRecords("truth/sample1.csv")
//	pred := evaluate.RecordsFromRows(tbl.Rows)
//	fmt.Println(evaluate.RowAccuracy(pred, gt))
package evaluate
