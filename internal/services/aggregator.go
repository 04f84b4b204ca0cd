package services

import (
	"context"
	"fmt"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/repositories"
)

// CandidateDocument is an existing record flattened for comparison.
type CandidateDocument struct {
	Source string
	Title  string
	Text   string
}

// DocumentText joins a title and a description the way every compared
// document is built.
func DocumentText(title, description string) string {
	return title + " " + description
}

func NewCandidateDocument(c models.Candidate) CandidateDocument {
	return CandidateDocument{
		Source: c.Source(),
		Title:  c.CandidateTitle(),
		Text:   DocumentText(c.CandidateTitle(), c.CandidateDescription()),
	}
}

type Aggregator interface {
	// Collect loads accepted projects, college ideas and team proposals of
	// the given year, in that order.
	Collect(ctx context.Context, year int) ([]CandidateDocument, error)
}

type aggregator struct {
	corpus repositories.CorpusRepository
}

func NewAggregator(corpus repositories.CorpusRepository) Aggregator {
	return &aggregator{corpus: corpus}
}

func (a *aggregator) Collect(ctx context.Context, year int) ([]CandidateDocument, error) {
	projects, err := a.corpus.AcceptedProjectsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}

	ideas, err := a.corpus.CollegeIdeasByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}

	proposals, err := a.corpus.TeamProposalsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}

	docs := make([]CandidateDocument, 0, len(projects)+len(ideas)+len(proposals))
	for _, p := range projects {
		docs = append(docs, NewCandidateDocument(p))
	}
	for _, i := range ideas {
		docs = append(docs, NewCandidateDocument(i))
	}
	for _, t := range proposals {
		docs = append(docs, NewCandidateDocument(t))
	}

	return docs, nil
}
