package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/f3rmion/senti/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err, "Open")
	t.Cleanup(func() { _ = s.Close() })

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func result(category string, polarity float64) *sentiment.Result {
	return &sentiment.Result{
		Overall: sentiment.Score{Category: category, Polarity: polarity, Subjectivity: 0.5},
		Sentences: []sentiment.SentenceScore{
			{Sentence: "One.", Category: category, Polarity: polarity, Subjectivity: 0.5},
		},
	}
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, "I love this!", result("Positive", 0.8))
	require.NoError(t, err)
	_, err = s.Record(ctx, "I hate this.", result("Negative", -0.7))
	require.NoError(t, err)
	_, err = s.Record(ctx, "It is a table.", result("Neutral", 0))
	require.NoError(t, err)

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "It is a table.", entries[0].Text, "newest first")
	assert.Equal(t, "I love this!", entries[2].Text)
	assert.Equal(t, "Negative", entries[1].Result.Overall.Category)
	assert.InDelta(t, -0.7, entries[1].Result.Sentences[0].Polarity, 1e-9)
	assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Record(ctx, "Fine.", result("Neutral", 0))
	require.NoError(t, err)

	e, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Fine.", e.Text)

	require.NoError(t, s.Delete(ctx, id))

	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)
}

func TestClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Record(ctx, "text", result("Positive", 0.1))
		require.NoError(t, err)
	}

	n, err := s.Clear(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordNilResult(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Record(context.Background(), "text", nil)
	require.Error(t, err)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(ctx, "persisted", result("Positive", 0.3))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "persisted", entries[0].Text)
}
