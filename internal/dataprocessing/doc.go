// Package dataprocessing is the exam dataset engine: it normalizes raw
// spreadsheet cells, parses exam-result worksheets, merges them into a
// single dataset, caches that dataset behind a file-signature staleness
// check, and derives analytics from it.
//
// The flow is strictly one-way:
//
//	.xlsx files → ParseSheet → Builder → Cache → aggregation functions
//
// Worksheets that do not follow the exam layout are skipped silently; only
// I/O failures and corrupt workbooks surface as errors. The built Dataset
// is immutable and replaced wholesale on rebuild, so readers can hold onto
// it without synchronization.
package dataprocessing
