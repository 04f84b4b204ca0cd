package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestScorer() SimilarityScorer {
	return NewSimilarityScorer(NewVectorizer(DefaultMaxFeatures, DefaultFillerWords), zap.NewNop())
}

func TestScoreSelfSimilarity(t *testing.T) {
	text := "Smart Parking System IoT based smart parking using sensors"

	scores := newTestScorer().Score(text, []string{text})
	require.Len(t, scores, 1)
	assert.InDelta(t, 1.0, scores[0], 1e-9)
}

func TestScoreDisjointVocabulary(t *testing.T) {
	scores := newTestScorer().Score(
		"Blockchain voting ledger",
		[]string{"Greenhouse irrigation controller"},
	)
	require.Len(t, scores, 1)
	assert.Equal(t, 0.0, scores[0])
}

func TestScoreKeepsCandidateOrder(t *testing.T) {
	scores := newTestScorer().Score("hospital queue tracker", []string{
		"library book catalogue",
		"hospital queue tracker",
		"hospital bed tracker",
	})
	require.Len(t, scores, 3)

	assert.Equal(t, 0.0, scores[0])
	assert.InDelta(t, 1.0, scores[1], 1e-9)
	assert.Greater(t, scores[2], 0.0)
	assert.Less(t, scores[2], 1.0)

	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestScoreDegenerateInputReturnsNoScores(t *testing.T) {
	scores := newTestScorer().Score("the of and", []string{"it is a", "was were"})
	assert.Empty(t, scores)
}

func TestScoreNoCandidates(t *testing.T) {
	assert.Empty(t, newTestScorer().Score("anything", nil))
}

func TestCompareRanksByScore(t *testing.T) {
	docs := []CandidateDocument{
		{Source: "Project", Title: "Library", Text: "library book catalogue"},
		{Source: "Team Project", Title: "Queue", Text: "hospital queue tracker"},
		{Source: "College Idea", Title: "Beds", Text: "hospital bed tracker"},
	}

	matches := newTestScorer().Compare("hospital queue tracker", docs)
	require.Len(t, matches, 3)
	assert.Equal(t, "Queue", matches[0].Title)
	assert.Equal(t, "Beds", matches[1].Title)
	assert.Equal(t, "Library", matches[2].Title)
}

func TestCosineZeroMagnitude(t *testing.T) {
	assert.Equal(t, 0.0, Cosine(SparseVector{}, SparseVector{"a": 1}))
	assert.Equal(t, 0.0, Cosine(SparseVector{"a": 0}, SparseVector{"a": 1}))
}

func TestRankIsStable(t *testing.T) {
	matches := []Match{
		{Title: "a", Score: 0.2},
		{Title: "b", Score: 0.7},
		{Title: "c", Score: 0.2},
	}
	Rank(matches)
	assert.Equal(t, []string{"b", "a", "c"}, []string{matches[0].Title, matches[1].Title, matches[2].Title})
}
