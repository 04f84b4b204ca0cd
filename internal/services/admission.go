package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/repositories"
)

// DefaultSimilarityThreshold is the score a candidate must strictly exceed
// to block a proposal.
const DefaultSimilarityThreshold = 0.5

// Decision is the outcome of comparing a proposal with its corpus.
type Decision struct {
	MaxSimilarity float64
	Similar       []Match
}

func (d Decision) Admit() bool {
	return len(d.Similar) == 0
}

// Decide flags every match scoring strictly above threshold.
func Decide(matches []Match, threshold float64) Decision {
	var d Decision
	for _, m := range matches {
		if m.Score > d.MaxSimilarity {
			d.MaxSimilarity = m.Score
		}
		if m.Score > threshold {
			d.Similar = append(d.Similar, m)
		}
	}
	Rank(d.Similar)
	return d
}

// AdmissionResult is one of Admitted, Rejected or Failed.
type AdmissionResult interface {
	admissionResult()
}

type Admitted struct {
	ProposalID    uint
	MaxSimilarity float64
}

type Rejected struct {
	MaxSimilarity float64
	Matches       []Match
}

type FailureKind string

const (
	FailureInvalidInput      FailureKind = "invalid_input"
	FailureTeamNotFound      FailureKind = "team_not_found"
	FailureTeamHasProposal   FailureKind = "team_has_proposal"
	FailureTitleConflict     FailureKind = "title_conflict"
	FailureCorpusUnavailable FailureKind = "corpus_unavailable"
	FailurePersistence       FailureKind = "persistence"
	FailureBusy              FailureKind = "busy"
)

type Failed struct {
	Kind FailureKind
	Err  error
}

func (Admitted) admissionResult() {}
func (Rejected) admissionResult() {}
func (Failed) admissionResult()   {}

func (f Failed) Error() string {
	if f.Err == nil {
		return string(f.Kind)
	}
	return f.Err.Error()
}

func (f Failed) Unwrap() error { return f.Err }

type AdmissionService interface {
	// Check compares a proposal with the corpus of year without writing.
	Check(ctx context.Context, year int, proposal models.ProjectIdeaRequest) (Decision, []Match, error)
	// Submit runs the full check for the current academic year and stores
	// the proposal as pending when nothing is too similar.
	Submit(ctx context.Context, teamID uint, proposal models.ProjectIdeaRequest) AdmissionResult
}

type admissionService struct {
	aggregator Aggregator
	scorer     SimilarityScorer
	proposals  repositories.ProposalRepository
	years      *YearResolver
	locker     YearLocker
	threshold  float64
	timeout    time.Duration
	log        *zap.Logger
}

type AdmissionOptions struct {
	Threshold float64
	Timeout   time.Duration
}

func NewAdmissionService(
	aggregator Aggregator,
	scorer SimilarityScorer,
	proposals repositories.ProposalRepository,
	years *YearResolver,
	locker YearLocker,
	opts AdmissionOptions,
	log *zap.Logger,
) AdmissionService {
	if locker == nil {
		locker = NewNoopYearLocker()
	}
	return &admissionService{
		aggregator: aggregator,
		scorer:     scorer,
		proposals:  proposals,
		years:      years,
		locker:     locker,
		threshold:  opts.Threshold,
		timeout:    opts.Timeout,
		log:        log,
	}
}

func (s *admissionService) Check(ctx context.Context, year int, proposal models.ProjectIdeaRequest) (Decision, []Match, error) {
	docs, err := s.aggregator.Collect(ctx, year)
	if err != nil {
		return Decision{}, nil, err
	}
	if len(docs) == 0 {
		return Decision{}, nil, nil
	}

	matches := s.scorer.Compare(DocumentText(proposal.Title, proposal.Description), docs)
	return Decide(matches, s.threshold), matches, nil
}

func (s *admissionService) Submit(ctx context.Context, teamID uint, proposal models.ProjectIdeaRequest) AdmissionResult {
	proposal.Title = strings.TrimSpace(proposal.Title)
	proposal.Description = strings.TrimSpace(proposal.Description)
	if proposal.Title == "" || proposal.Description == "" {
		return Failed{Kind: FailureInvalidInput, Err: ErrInvalidInput}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	year := s.years.Current()
	log := s.log.With(zap.Uint("team_id", teamID), zap.Int("year", year), zap.String("title", proposal.Title))

	unlock, err := s.locker.Lock(ctx, year)
	if err != nil {
		log.Warn("admission lock not acquired", zap.Error(err))
		return Failed{Kind: FailureBusy, Err: err}
	}
	defer unlock()

	decision, _, err := s.Check(ctx, year, proposal)
	if err != nil {
		log.Error("similarity corpus fetch failed", zap.Error(err))
		return Failed{Kind: FailureCorpusUnavailable, Err: err}
	}

	if !decision.Admit() {
		log.Info("project idea rejected",
			zap.Float64("max_similarity", decision.MaxSimilarity),
			zap.Int("similar", len(decision.Similar)),
		)
		return Rejected{MaxSimilarity: decision.MaxSimilarity, Matches: decision.Similar}
	}

	maxSim := decision.MaxSimilarity
	record := &models.TeamProposal{
		TeamID:      teamID,
		Title:       proposal.Title,
		Description: proposal.Description,
		Year:        year,
		MaxSimScore: &maxSim,
		Status:      models.ProposalPending,
	}

	if err := s.proposals.Admit(ctx, record); err != nil {
		log.Error("failed to store admitted project idea", zap.Error(err))
		return Failed{Kind: admitFailureKind(err), Err: err}
	}

	log.Info("project idea admitted",
		zap.Uint("proposal_id", record.ID),
		zap.Float64("max_similarity", maxSim),
	)
	return Admitted{ProposalID: record.ID, MaxSimilarity: maxSim}
}

func admitFailureKind(err error) FailureKind {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return FailureTeamNotFound
	case errors.Is(err, repositories.ErrTeamHasProposal):
		return FailureTeamHasProposal
	case errors.Is(err, repositories.ErrDuplicateTitle):
		return FailureTitleConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return FailureBusy
	}
	return FailurePersistence
}
