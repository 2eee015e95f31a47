package messages

import (
	"time"
)

// Sentiment enum
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Defaults used when entity resolution finds no match.
const (
	CompanyUnknown = "unknown"
	ServiceUnknown = "unknown"
)

// Aggregate Root: Message
// One classified social-media message. Records are written once during
// ingestion and never mutated afterwards.
type Message struct {
	ID        int64     `json:"id"`
	BatchID   string    `json:"batch_id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Platform  string    `json:"platform"`
	Company   string    `json:"company"`
	Service   string    `json:"service"`
	Body      string    `json:"body"`
	Sentiment Sentiment `json:"sentiment"`
}
