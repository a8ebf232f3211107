package annotations

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	seed := Seed()
	require.Len(t, seed, 4)
	assert.Equal(t, "John Rose", seed[0].Author)
	assert.Equal(t, Positive, seed[0].Sentiment)
	for i, row := range seed[1:] {
		assert.Equal(t, Unset, row.Sentiment, "row %d", i+1)
	}
}

func TestApply(t *testing.T) {
	t.Run("accepts sentiment and ranking edits", func(t *testing.T) {
		edited := Seed()
		edited[1].Sentiment = Negative
		edited[2].Sentiment = Positive
		edited[3].Ranking = 10

		accepted, err := Apply(Seed(), edited)
		require.NoError(t, err)
		assert.Equal(t, Negative, accepted[1].Sentiment)
		assert.Equal(t, 10, accepted[3].Ranking)
	})

	tests := []struct {
		name   string
		edit   func([]Annotation) []Annotation
		column string
	}{
		{"tweet is read-only", func(a []Annotation) []Annotation { a[0].Tweet = "changed"; return a }, "tweet"},
		{"author is read-only", func(a []Annotation) []Annotation { a[2].Author = "Someone"; return a }, "author"},
		{"unknown sentiment", func(a []Annotation) []Annotation { a[1].Sentiment = "🙂 Happy"; return a }, "sentiment"},
		{"rows cannot be added", func(a []Annotation) []Annotation { return append(a, Annotation{Tweet: "new"}) }, "rows"},
		{"rows cannot be removed", func(a []Annotation) []Annotation { return a[:2] }, "rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(Seed(), tt.edit(Seed()))
			var editErr *EditError
			require.True(t, errors.As(err, &editErr))
			assert.Equal(t, tt.column, editErr.Column)
		})
	}
}

func TestSentimentOptionsOrder(t *testing.T) {
	assert.Equal(t, []Sentiment{Unset, Positive, Neutral, Negative}, SentimentOptions())

	opts := SentimentOptions()
	opts[0] = "changed"
	assert.Equal(t, Unset, SentimentOptions()[0])
}

func TestSummarize(t *testing.T) {
	rows := Seed()
	rows[1].Sentiment = Negative
	rows[2].Sentiment = Positive

	summary := Summarize(rows)
	require.Len(t, summary, len(SentimentOptions()))
	assert.Equal(t, SentimentCount{Sentiment: Unset, Count: 1}, summary[0])
	assert.Equal(t, SentimentCount{Sentiment: Positive, Count: 2}, summary[1])
	assert.Equal(t, SentimentCount{Sentiment: Neutral, Count: 0}, summary[2])
	assert.Equal(t, SentimentCount{Sentiment: Negative, Count: 1}, summary[3])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Seed()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"", "tweet", "author", "sentiment", "ranking"}, records[0])
	assert.Equal(t, []string{"0", "What a great new feature! I love it!", "John Rose", "🤩 Positive", "1"}, records[1])
	assert.Equal(t, "I don't like this feature. It's not useful. I prefer chart improvements.", records[2][1])
	assert.Equal(t, "", records[2][3])
}
