package services

import (
	"math"
	"sort"

	"go.uber.org/zap"
)

// Match is one scored candidate.
type Match struct {
	Source string  `json:"source"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
}

type SimilarityScorer interface {
	// Score returns one cosine score per candidate, in candidate order. An
	// empty result means the texts could not be vectorized and must be read
	// as "no similarity".
	Score(query string, candidates []string) []float64
	// Compare scores a query against candidate documents and returns the
	// matches ranked by descending score.
	Compare(query string, docs []CandidateDocument) []Match
}

type similarityScorer struct {
	vectorizer *Vectorizer
	log        *zap.Logger
}

func NewSimilarityScorer(vectorizer *Vectorizer, log *zap.Logger) SimilarityScorer {
	return &similarityScorer{
		vectorizer: vectorizer,
		log:        log,
	}
}

func (s *similarityScorer) Score(query string, candidates []string) []float64 {
	if len(candidates) == 0 {
		return nil
	}

	docs := make([]string, 0, len(candidates)+1)
	docs = append(docs, query)
	docs = append(docs, candidates...)

	vectors, err := s.vectorizer.FitTransform(docs)
	if err != nil {
		s.log.Warn("similarity vectorization failed, treating as no similarity",
			zap.Int("candidates", len(candidates)),
			zap.Error(err),
		)
		return nil
	}

	scores := make([]float64, len(candidates))
	for i := range candidates {
		scores[i] = Cosine(vectors[0], vectors[i+1])
	}
	return scores
}

func (s *similarityScorer) Compare(query string, docs []CandidateDocument) []Match {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	scores := s.Score(query, texts)
	if len(scores) == 0 {
		return nil
	}

	matches := make([]Match, len(docs))
	for i, d := range docs {
		matches[i] = Match{Source: d.Source, Title: d.Title, Score: scores[i]}
	}
	Rank(matches)
	return matches
}

// Cosine returns dot(a,b)/(|a||b|), or 0 when either vector has no weight.
// The result is clamped into [0,1].
func Cosine(a, b SparseVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for _, term := range a.terms() {
		dot += a[term] * b[term]
	}

	na, nb := magnitude(a), magnitude(b)
	if na == 0 || nb == 0 {
		return 0
	}

	score := dot / (na * nb)
	return math.Max(0, math.Min(1, score))
}

// magnitude sums in term order so repeated runs give bit-identical scores.
func magnitude(v SparseVector) float64 {
	var sum float64
	for _, term := range v.terms() {
		sum += v[term] * v[term]
	}
	return math.Sqrt(sum)
}

func (v SparseVector) terms() []string {
	terms := make([]string, 0, len(v))
	for term := range v {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Rank orders matches by descending score. Equal scores keep their input
// order.
func Rank(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}
