// Package annotations holds the tweet annotation table: a fixed seed of tweets
// whose sentiment and ranking columns may be edited while the tweet text and
// author stay locked.
package annotations

import (
	"fmt"
	"slices"
)

// Sentiment is one of the allowed sentiment labels. The empty value means unset.
type Sentiment string

const (
	Unset    Sentiment = ""
	Positive Sentiment = "🤩 Positive"
	Neutral  Sentiment = "☯ Neutral"
	Negative Sentiment = "😤 Negative"
)

var sentimentOptions = []Sentiment{Unset, Positive, Neutral, Negative}

// SentimentOptions lists the allowed sentiment values in display order.
func SentimentOptions() []Sentiment {
	return slices.Clone(sentimentOptions)
}

// Valid reports whether s is an allowed sentiment.
func (s Sentiment) Valid() bool {
	return slices.Contains(sentimentOptions, s)
}

// Annotation is a single row of the annotation table.
type Annotation struct {
	Tweet     string    `json:"tweet"`
	Author    string    `json:"author"`
	Sentiment Sentiment `json:"sentiment"`
	Ranking   int       `json:"ranking"`
}

// Seed returns the tweets awaiting annotation.
func Seed() []Annotation {
	return []Annotation{
		{
			Tweet:     "What a great new feature! I love it!",
			Author:    "John Rose",
			Sentiment: Positive,
			Ranking:   1,
		},
		{
			Tweet:   "I don't like this feature. It's not useful. I prefer chart improvements.",
			Author:  "Will Hangu",
			Ranking: 2,
		},
		{
			Tweet:   "Wow, the Streamlit team can be proud! What an achievement!",
			Author:  "Luca Masucco",
			Ranking: 3,
		},
		{
			Tweet:   "The recent ChatGPT breakthrough is really exciting.",
			Author:  "Adrien Tree",
			Ranking: 4,
		},
	}
}

// EditError describes an edit that the table does not permit.
type EditError struct {
	Row    int
	Column string
	Reason string
}

func (e *EditError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("row %d, column %s: %s", e.Row, e.Column, e.Reason)
}

// Apply checks edited against seed and returns the accepted table.
// Rows may not be added or removed, and the tweet and author columns are read-only.
func Apply(seed, edited []Annotation) ([]Annotation, error) {
	if len(edited) != len(seed) {
		return nil, &EditError{
			Row:    -1,
			Column: "rows",
			Reason: fmt.Sprintf("expected %d rows, got %d", len(seed), len(edited)),
		}
	}

	accepted := make([]Annotation, len(seed))
	for i, row := range edited {
		if row.Tweet != seed[i].Tweet {
			return nil, &EditError{Row: i, Column: "tweet", Reason: "column is read-only"}
		}
		if row.Author != seed[i].Author {
			return nil, &EditError{Row: i, Column: "author", Reason: "column is read-only"}
		}
		if !row.Sentiment.Valid() {
			return nil, &EditError{Row: i, Column: "sentiment", Reason: fmt.Sprintf("unknown sentiment %q", row.Sentiment)}
		}
		accepted[i] = row
	}
	return accepted, nil
}

// SentimentCount is the number of rows carrying a sentiment.
type SentimentCount struct {
	Sentiment Sentiment `json:"sentiment"`
	Count     int       `json:"count"`
}

// Summarize counts rows per sentiment, listing every option even when its count is zero.
func Summarize(rows []Annotation) []SentimentCount {
	counts := make(map[Sentiment]int, len(sentimentOptions))
	for _, row := range rows {
		counts[row.Sentiment]++
	}

	summary := make([]SentimentCount, 0, len(sentimentOptions))
	for _, s := range sentimentOptions {
		summary = append(summary, SentimentCount{Sentiment: s, Count: counts[s]})
	}
	return summary
}
