// Package core defines the record model shared by every pipeline stage.
//
// A Record is an open JSON object read from one line of a newline-delimited
// JSON stream. The pipeline recognizes the "title" and "description" fields;
// every other field passes through each stage untouched. Stages annotate a
// record by setting exactly one additional field and then writing the record
// back out as a single JSON line.
package core
