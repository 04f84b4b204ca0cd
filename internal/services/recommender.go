package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Profile is what the external matcher knows about a student or a team.
type Profile struct {
	ID       string `json:"id"`
	JobTitle string `json:"jobtitle,omitempty"`
	Title    string `json:"title,omitempty"`
	Skills   string `json:"skills"`
}

type StudentMatch struct {
	ProjectID       string  `json:"project_id"`
	SimilarityScore float64 `json:"similarity_score"`
}

type TeamMatch struct {
	StudentID       string  `json:"student_id"`
	SimilarityScore float64 `json:"similarity_score"`
}

type RecommenderClient interface {
	// MatchStudentToTeams ranks teams for one student.
	MatchStudentToTeams(ctx context.Context, student Profile, teams []Profile) ([]StudentMatch, error)
	// MatchTeamToStudents ranks students for one team.
	MatchTeamToStudents(ctx context.Context, team Profile, students []Profile) ([]TeamMatch, error)
}

type recommenderClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRecommenderClient(baseURL string, timeout time.Duration) RecommenderClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &recommenderClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (r *recommenderClient) MatchStudentToTeams(ctx context.Context, student Profile, teams []Profile) ([]StudentMatch, error) {
	payload := map[string]interface{}{
		"student":  student,
		"projects": teams,
	}

	var resp struct {
		Matches []StudentMatch `json:"matches"`
	}
	if err := r.post(ctx, "/v1/match/student-to-projects", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

func (r *recommenderClient) MatchTeamToStudents(ctx context.Context, team Profile, students []Profile) ([]TeamMatch, error) {
	payload := map[string]interface{}{
		"project":  team,
		"students": students,
	}

	var resp struct {
		Matches []TeamMatch `json:"matches"`
	}
	if err := r.post(ctx, "/v1/match/projects-to-students", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

func (r *recommenderClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode recommendation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build recommendation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecommenderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status %d", ErrRecommenderBadResponse, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrRecommenderBadResponse, err)
	}
	return nil
}
