package dictionaries

import (
	"strings"

	"github.com/andresmx/sentimsg/internal/domain/messages"
)

// KeywordSet holds the per-run sentiment dictionaries. Tokens are lowercase
// and deduplicated. Immutable after load.
type KeywordSet struct {
	Positive map[string]struct{}
	Negative map[string]struct{}
}

// NewKeywordSet normalizes both word lists to lowercase sets. Empty entries
// are dropped; a nil list yields an empty set.
func NewKeywordSet(positive, negative []string) KeywordSet {
	return KeywordSet{
		Positive: toSet(positive),
		Negative: toSet(negative),
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// Classify scores body against the keyword set. Each dictionary entry counts
// at most once no matter how often it occurs in the body; the side with more
// hits wins, ties (including 0-0) are neutral.
func Classify(body string, kw KeywordSet) messages.Sentiment {
	lower := strings.ToLower(body)

	var pos, neg int
	for w := range kw.Positive {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for w := range kw.Negative {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return messages.SentimentPositive
	case neg > pos:
		return messages.SentimentNegative
	default:
		return messages.SentimentNeutral
	}
}
