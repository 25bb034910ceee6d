// Package nlp provides the linguistic normalization used for keyword
// matching: UAX #29 word segmentation, Unicode case folding, diacritic
// stripping, and stop-word removal.
//
// Every token carries its position in the normalized stream, which the
// analyzer uses for location and distance scoring. Document text and
// keywords go through the same chain so their normalized forms compare
// equal.
package nlp
