package services

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxFeatures caps the vocabulary when no limit is configured.
const DefaultMaxFeatures = 1000

var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words")

// SparseVector maps a vocabulary term to its weight. Rows produced by
// FitTransform are L2-normalised unless every weight is zero.
type SparseVector map[string]float64

// Vectorizer turns documents into TF-IDF weighted vectors over unigrams and
// bigrams. A vocabulary is fitted per call so every comparison uses document
// frequencies of exactly the documents being compared.
type Vectorizer struct {
	maxFeatures int
	stopWords   map[string]bool
}

func NewVectorizer(maxFeatures int, extraStopWords []string) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	stop := make(map[string]bool, len(englishStopWords)+len(extraStopWords))
	for w := range englishStopWords {
		stop[w] = true
	}
	for _, w := range extraStopWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			stop[w] = true
		}
	}

	return &Vectorizer{
		maxFeatures: maxFeatures,
		stopWords:   stop,
	}
}

// FitTransform builds a shared vocabulary from docs and returns one vector
// per document, in input order.
func (v *Vectorizer) FitTransform(docs []string) ([]SparseVector, error) {
	counts := make([]map[string]int, len(docs))
	docFreq := make(map[string]int)
	totals := make(map[string]int)

	for i, doc := range docs {
		counts[i] = v.termCounts(doc)
		for term, n := range counts[i] {
			docFreq[term]++
			totals[term] += n
		}
	}

	if len(docFreq) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := v.limitVocabulary(docFreq, totals)

	n := float64(len(docs))
	idf := make(map[string]float64, len(vocab))
	for term := range vocab {
		idf[term] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	vectors := make([]SparseVector, len(docs))
	for i, c := range counts {
		vec := make(SparseVector, len(c))
		for term, tf := range c {
			if vocab[term] {
				vec[term] = float64(tf) * idf[term]
			}
		}
		if norm := magnitude(vec); norm > 0 {
			for term := range vec {
				vec[term] /= norm
			}
		}
		vectors[i] = vec
	}

	return vectors, nil
}

// limitVocabulary keeps the maxFeatures most frequent terms. Ties are broken
// by document frequency and then alphabetically so results are stable.
func (v *Vectorizer) limitVocabulary(docFreq, totals map[string]int) map[string]bool {
	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}

	if len(terms) > v.maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			a, b := terms[i], terms[j]
			if totals[a] != totals[b] {
				return totals[a] > totals[b]
			}
			if docFreq[a] != docFreq[b] {
				return docFreq[a] > docFreq[b]
			}
			return a < b
		})
		terms = terms[:v.maxFeatures]
	}

	vocab := make(map[string]bool, len(terms))
	for _, term := range terms {
		vocab[term] = true
	}
	return vocab
}

func (v *Vectorizer) termCounts(doc string) map[string]int {
	tokens := v.Tokenize(doc)
	counts := make(map[string]int, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if i > 0 {
			counts[tokens[i-1]+" "+tok]++
		}
	}
	return counts
}

// Tokenize lowercases text, splits it on anything that is not a letter or a
// digit and drops stop words and single-rune tokens. Regular plurals are
// folded to their singular form.
func (v *Vectorizer) Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < 2 || v.stopWords[w] {
			continue
		}
		w = singular(w)
		if v.stopWords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func singular(w string) string {
	if len(w) <= 3 || !strings.HasSuffix(w, "s") {
		return w
	}
	switch {
	case strings.HasSuffix(w, "ss"), strings.HasSuffix(w, "us"), strings.HasSuffix(w, "is"):
		return w
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	}
	return w[:len(w)-1]
}
