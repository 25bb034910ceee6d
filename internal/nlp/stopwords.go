package nlp

// defaultStopWords returns the built-in stop-word set: high-frequency
// Portuguese and English function words, stored in normalized form
// (case-folded, diacritics stripped). The list is intentionally small;
// scoring tolerates the occasional function word far better than it
// tolerates dropping a content word.
func defaultStopWords() map[string]struct{} {
	list := []string{
		// Portuguese
		"a", "as", "o", "os", "um", "uma", "uns", "umas",
		"de", "do", "da", "dos", "das", "em", "no", "na", "nos", "nas",
		"por", "pelo", "pela", "pelos", "pelas", "com", "sem", "sob", "sobre",
		"para", "pra", "ao", "aos", "e", "ou", "mas", "nem", "que", "se",
		"ja", "nao", "sim", "tambem", "muito", "mais", "menos", "como",
		"ser", "sao", "foi", "era", "esta", "estao", "ha", "ter", "tem",
		"seu", "sua", "seus", "suas", "meu", "minha", "este", "isso",
		"isto", "aquele", "aquela", "ele", "ela", "eles", "elas", "eu",
		"voce", "voces", "quando", "onde", "porque", "qual", "quais",

		// English
		"the", "an", "and", "or", "but", "nor", "of", "in", "on", "at",
		"to", "for", "with", "without", "by", "from", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "its", "this", "that",
		"these", "those", "he", "she", "they", "them", "his", "her", "their",
		"i", "we", "you", "my", "our", "your", "not", "no", "yes", "do",
		"does", "did", "have", "has", "had", "will", "would", "can", "could",
		"so", "if", "then", "than", "too", "very", "just", "about", "into",
		"over", "under", "again", "more", "most", "some", "such", "only",
		"own", "same", "when", "where", "why", "how", "all", "any", "both",
	}

	set := make(map[string]struct{}, len(list))
	for _, w := range list {
		set[w] = struct{}{}
	}
	return set
}
