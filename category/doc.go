// Package category assigns a single news category per record via a remote
// language model.
//
// Classification is strictly sequential with one outstanding model call at
// a time, and input order is preserved exactly. The model's trimmed
// response is trusted verbatim; a failed or empty response degrades that
// record to the Uncategorized fallback without affecting the run.
package category
