package model

// Keyword is a user-supplied search term together with its normalized form.
// Two keywords are supplied per analysis request; they are transient and
// never persisted on their own.
type Keyword struct {
	// Text is the keyword as typed by the user.
	Text string `json:"text"`

	// Normalized is the form used for matching: case-folded, diacritics
	// stripped, produced by the same normalizer applied to document text.
	Normalized string `json:"normalized"`
}
