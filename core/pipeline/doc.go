// Package pipeline drives the M&A evidence extraction run for one firm:
// query construction, URL discovery and ordered dedup, domain-policy
// filtering, and the sequential fetch→scan→synthesize loop that terminates
// on the first successfully synthesized sentence.
//
// The pipeline is deliberately sequential and retry-free: every URL gets one
// fetch attempt, every failure is a permanent verdict for that URL within
// the run, and nothing persists between runs.
package pipeline
