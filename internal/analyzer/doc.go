// Package analyzer ranks crawled documents by relevance to a keyword pair.
//
// Every document is reduced to a normalized token stream (see the nlp
// package), then scored with a set of named sub-scores in [0,1]:
//
//   - presence: how often the keywords occur
//   - position: how early the keyword pair appears
//   - distance: how close together the keywords occur
//   - similarity: reserved for vector similarity, currently always zero
//
// A Combiner folds the sub-scores into one composite value used for
// ranking. Documents containing neither keyword are excluded from the
// result. Scoring is deterministic: the same documents and keywords always
// produce the same ranking.
package analyzer
