// Package scan turns fetched text blocks into M&A evidence items.
//
// Text is split into sentences, each sentence is tested against a fixed
// keyword table (positive M&A verbs) and a negation table (hedges such as
// "rumor" or "exploring" that disqualify a sentence outright), and qualifying
// sentences are annotated with candidate counterparty names and a date.
//
// The keyword, negation, date, and entity patterns live in patterns.go so
// they can be reviewed and extended without touching the scanning control
// flow.
package scan
