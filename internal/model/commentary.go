package model

import (
	"errors"
	"time"
)

// Sentiment tags the tone of a commentary message
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentAdvice   Sentiment = "advice"
)

// ErrInvalidSentiment is returned when a sentiment is not one of the known values
var ErrInvalidSentiment = errors.New("invalid sentiment")

// ParseSentiment validates a sentiment string
func ParseSentiment(s string) (Sentiment, error) {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNeutral, SentimentNegative, SentimentAdvice:
		return Sentiment(s), nil
	}
	return "", ErrInvalidSentiment
}

// Commentary is one message from the advice collaborator
type Commentary struct {
	GameID    GameID
	Message   string
	Sentiment Sentiment
	Score     int  // score that triggered the request
	Fallback  bool // true when the collaborator failed and a canned message was used
	CreatedAt time.Time
}
