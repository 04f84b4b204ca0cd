package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	v := NewVectorizer(0, DefaultFillerWords)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"stop words dropped", "The parking of the city", []string{"parking", "city"}},
		{"punctuation splits", "Sensor-based IoT, parking!", []string{"sensor", "iot", "parking"}},
		{"plurals folded", "sensors libraries access status", []string{"sensor", "library", "access", "status"}},
		{"single runes dropped", "a b c go x", nil},
		{"filler words dropped", "Smart Parking System using sensors", []string{"smart", "parking", "sensor"}},
		{"digits kept", "Web3 wallet 2025", []string{"web3", "wallet", "2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Tokenize(tt.text)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFitTransformBuildsUnigramsAndBigrams(t *testing.T) {
	v := NewVectorizer(0, nil)

	vectors, err := v.FitTransform([]string{"smart parking sensor", "smart voting"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	assert.Contains(t, vectors[0], "smart parking")
	assert.Contains(t, vectors[0], "parking sensor")
	assert.NotContains(t, vectors[0], "smart sensor")
	assert.Contains(t, vectors[1], "smart voting")

	for _, vec := range vectors {
		assert.InDelta(t, 1.0, magnitude(vec), 1e-9)
	}
}

func TestFitTransformWeightsRareTermsHigher(t *testing.T) {
	v := NewVectorizer(0, nil)

	vectors, err := v.FitTransform([]string{
		"parking drone",
		"parking",
		"parking",
	})
	require.NoError(t, err)

	// "parking" appears everywhere, "drone" once.
	assert.Greater(t, vectors[0]["drone"], vectors[0]["parking"])
}

func TestFitTransformCapsVocabulary(t *testing.T) {
	v := NewVectorizer(2, nil)

	vectors, err := v.FitTransform([]string{
		"alpha alpha alpha beta beta gamma",
		"alpha beta delta",
	})
	require.NoError(t, err)

	vocab := map[string]bool{}
	for _, vec := range vectors {
		for term := range vec {
			vocab[term] = true
		}
	}
	assert.Equal(t, map[string]bool{"alpha": true, "beta": true}, vocab)
}

func TestFitTransformEmptyVocabulary(t *testing.T) {
	v := NewVectorizer(0, nil)

	_, err := v.FitTransform([]string{"the and of", "it is a"})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestFitTransformZeroVectorForStopWordDocument(t *testing.T) {
	v := NewVectorizer(0, nil)

	vectors, err := v.FitTransform([]string{"the and of", "parking lot"})
	require.NoError(t, err)
	assert.Empty(t, vectors[0])
	assert.False(t, math.IsNaN(magnitude(vectors[1])))
}
