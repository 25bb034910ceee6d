package nlp

import (
	"errors"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyKeyword is returned when a keyword normalizes to nothing:
// empty input, punctuation only, or a stop word.
var ErrEmptyKeyword = errors.New("keyword is empty or has no indexable form")

// Token is a single normalized word with its position in the token stream.
// Positions index the filtered stream: stop words and punctuation do not
// advance them, so position arithmetic in scoring stays meaningful.
type Token struct {
	// Text is the normalized word.
	Text string

	// Position is the index of the word within the normalized stream.
	Position int
}

// Tokenizer turns raw document text into a normalized token stream.
//
// Normalization is deliberately simple and deterministic: Unicode word
// segmentation (UAX #29), case folding, diacritic stripping, and stop-word
// removal. No stemming or lemmatization is applied, so "programming" and
// "programs" remain distinct tokens. Keywords must pass through the same
// chain so that "Programação" matches "programacao".
type Tokenizer struct {
	// stripMarks removes combining marks after NFD decomposition,
	// folding accented characters to their base letters.
	stripMarks transform.Transformer

	// fold performs Unicode case folding.
	fold cases.Caser

	// stopWords are normalized words excluded from the token stream.
	stopWords map[string]struct{}
}

// NewTokenizer creates a Tokenizer with the built-in Portuguese and English
// stop-word lists.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		stripMarks: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		fold:       cases.Fold(),
		stopWords:  defaultStopWords(),
	}
}

// Normalize converts text into the normalized token stream. Word boundaries
// follow UAX #29; segments without any letter or digit are dropped, as are
// stop words. Positions are assigned after filtering.
func (t *Tokenizer) Normalize(text string) []Token {
	tokens := make([]Token, 0)

	segments := words.FromString(text)
	position := 0
	for segments.Next() {
		word := t.normalizeWord(segments.Value())
		if word == "" {
			continue
		}
		if _, stop := t.stopWords[word]; stop {
			continue
		}
		tokens = append(tokens, Token{Text: word, Position: position})
		position++
	}

	return tokens
}

// NormalizeKeyword applies the document normalization chain to a single
// keyword. It returns ErrEmptyKeyword when nothing indexable remains, so a
// keyword that could never match any token fails fast.
func (t *Tokenizer) NormalizeKeyword(keyword string) (string, error) {
	word := t.normalizeWord(keyword)
	if word == "" {
		return "", ErrEmptyKeyword
	}
	if _, stop := t.stopWords[word]; stop {
		return "", ErrEmptyKeyword
	}
	return word, nil
}

// normalizeWord case-folds and strips diacritics from a single segment.
// Returns "" for segments with no letters or digits (punctuation, spaces).
func (t *Tokenizer) normalizeWord(segment string) string {
	if !hasLetterOrDigit(segment) {
		return ""
	}

	folded := t.fold.String(segment)
	stripped, _, err := transform.String(t.stripMarks, folded)
	if err != nil {
		// Transform failures are limited to malformed UTF-8; fall back to
		// the folded form so the token is not lost.
		return folded
	}
	return stripped
}

// hasLetterOrDigit reports whether the segment contains an indexable rune.
func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
