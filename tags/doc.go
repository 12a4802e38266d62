// Package tags generates controlled-vocabulary tags for news records via a
// remote language model.
//
// Records are processed in fixed-size batches fanned out over a bounded
// worker pool. Each record gets exactly one model call with no timeout and
// no retry; a failed call degrades that single record to an empty tag list
// and never aborts the batch or the run. Batch results are collected in
// completion order, so output order differs from input order while the
// record count is preserved exactly.
package tags
