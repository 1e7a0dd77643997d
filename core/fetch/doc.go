// Package fetch retrieves candidate pages and extracts quality-gated text
// blocks from them.
//
// A fetch is a single bounded-timeout GET with an identifying User-Agent and
// no retries. Extraction tries a fixed priority list of article-like
// container selectors and keeps the first container whose text clears the
// length gate and contains no boilerplate markers; when no container
// qualifies it falls back to the first heading plus a handful of individually
// gated paragraphs.
//
// Failures never propagate as errors from the pipeline's point of view: a
// [Result] carries a typed failure kind so callers can log the cause, and an
// empty block list simply means "no usable content".
package fetch
