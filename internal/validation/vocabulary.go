package validation

// Pain-point vocabularies. Terms are matched as case-folded substrings of a
// record's title and body, so short terms also hit inside longer words.
// Both lists are defaults; callers may pass their own vocabulary to
// ExtractPainPoints.

// DefaultRedditVocabulary covers the frustration and need markers that show
// up in Reddit posts.
func DefaultRedditVocabulary() []string {
	return []string{
		"struggling", "frustrated", "annoying", "waste time", "wasting time",
		"difficult", "problem", "issue", "broken", "hate", "terrible",
		"wish", "need", "missing", "slow", "expensive", "costly",
		"complicated", "confusing", "sucks", "awful", "pain",
		"nightmare", "help", "advice", "how to", "anyone know",
		"recommend", "alternative", "better than", "tired of",
	}
}

// DefaultTwitterVocabulary is a tighter list tuned for short-form tweets.
func DefaultTwitterVocabulary() []string {
	return []string{
		"struggling", "frustrated", "annoying", "waste time",
		"difficult", "problem", "issue", "broken", "hate",
		"wish", "need", "missing", "slow", "expensive",
		"complicated", "confusing",
	}
}
