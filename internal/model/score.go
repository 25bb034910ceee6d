package model

// Sub-score names used in Subscores. Keeping them as constants lets
// combination strategies and reports refer to the same tags.
const (
	// ScorePresence counts keyword occurrences in the token stream.
	ScorePresence = "presence"

	// ScorePosition rewards keyword pairs appearing early in the document.
	ScorePosition = "position"

	// ScoreDistance rewards keyword occurrences close to each other.
	ScoreDistance = "distance"

	// ScoreSimilarity is the reserved vector-similarity slot. It is always
	// zero until an embedding backend exists; the slot keeps the
	// combination function stable once one is added.
	ScoreSimilarity = "similarity"
)

// Subscores is a tagged set of named sub-scores, each in [0,1].
// Missing tags are treated as zero by combination strategies.
type Subscores map[string]float64

// Get returns the sub-score for the given tag, or zero if absent.
func (s Subscores) Get(name string) float64 {
	return s[name]
}

// ScoredDocument is the result of ranking one document against a keyword
// pair. It exists only for the duration of an analysis request and is
// recomputed on demand; re-running analysis on unchanged data yields
// identical scores.
type ScoredDocument struct {
	// URL identifies the scored document.
	URL string `json:"url"`

	// Presence is the occurrence-count sub-score.
	Presence float64 `json:"presence"`

	// Position is the earliest-pair-position sub-score.
	Position float64 `json:"position"`

	// Distance is the minimum keyword-distance sub-score.
	Distance float64 `json:"distance"`

	// Similarity is the vector-similarity sub-score (currently always 0).
	Similarity float64 `json:"similarity"`

	// Composite is the single ranking value combining all sub-scores.
	Composite float64 `json:"composite"`

	// KeywordPositions records, per normalized keyword, the token positions
	// at which it occurs in the document. Used for persistence.
	KeywordPositions map[string][]int `json:"keyword_positions,omitempty"`
}

// Subscores returns the tagged sub-score set of the document.
func (d *ScoredDocument) Subscores() Subscores {
	return Subscores{
		ScorePresence:   d.Presence,
		ScorePosition:   d.Position,
		ScoreDistance:   d.Distance,
		ScoreSimilarity: d.Similarity,
	}
}
