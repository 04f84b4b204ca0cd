package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/repositories"
)

type stubParser struct {
	summary string
	err     error
	paths   []string
}

func (p *stubParser) ExtractText(path string) (string, error) {
	return p.summary, p.err
}

func (p *stubParser) ExtractSummary(path string, _ int) (string, error) {
	p.paths = append(p.paths, path)
	return p.summary, p.err
}

func uploadRequest(title string) models.ProjectUploadRequest {
	return models.ProjectUploadRequest{
		Title:       title,
		Description: "Tracks equipment loans",
		Tools:       []string{"go", "postgres"},
		Supervisor:  "Dr. Smith",
		Year:        2024,
		TeamMembers: []models.ProjectMemberInput{
			{FirstName: "Ann", LastName: "Lee", Email: "Ann@Uni.edu", IsLeader: true},
			{FirstName: "Bo", LastName: "Kim", Email: "bo@uni.edu"},
		},
	}
}

func TestUploadStoresProjectAndMembers(t *testing.T) {
	store := newMemStore()
	svc := NewArchiveService(store.repository().Project, &stubParser{}, zap.NewNop())

	project, err := svc.Upload(context.Background(), "admin@uni.edu", uploadRequest("  Equipment Loans  "))
	require.NoError(t, err)

	assert.NotZero(t, project.ID)
	assert.Equal(t, "Equipment Loans", project.Title)
	assert.Equal(t, "go postgres", project.Tools)
	assert.Nil(t, project.ReportPath)
	require.Len(t, project.Members, 2)
	assert.Equal(t, "ann@uni.edu", project.Members[0].Email)
	assert.Equal(t, project.ID, project.Members[0].ProjectID)

	resp, err := svc.GetByTitle(context.Background(), "Equipment Loans")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "postgres"}, resp.Tools)
}

func TestUploadValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.ProjectUploadRequest)
		want   error
	}{
		{"missing title", func(r *models.ProjectUploadRequest) { r.Title = " " }, ErrInvalidInput},
		{"missing description", func(r *models.ProjectUploadRequest) { r.Description = "" }, ErrInvalidInput},
		{"missing year", func(r *models.ProjectUploadRequest) { r.Year = 0 }, ErrInvalidInput},
		{"duplicate member", func(r *models.ProjectUploadRequest) { r.TeamMembers[1].Email = "ann@uni.edu" }, ErrDuplicateMember},
		{"title exists", func(r *models.ProjectUploadRequest) { r.Title = "Taken" }, repositories.ErrDuplicateTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.projects = []models.Project{{ID: 1, Title: "Taken", Description: "x", Year: 2024}}

			req := uploadRequest("Equipment Loans")
			tt.mutate(&req)

			_, err := NewArchiveService(store.repository().Project, &stubParser{}, zap.NewNop()).Upload(context.Background(), "admin@uni.edu", req)
			assert.ErrorIs(t, err, tt.want)
			assert.Len(t, store.projects, 1)
		})
	}
}

func TestImportTakesDescriptionFromReport(t *testing.T) {
	store := newMemStore()
	parser := &stubParser{summary: "A report about loans."}
	svc := NewArchiveService(store.repository().Project, parser, zap.NewNop())

	req := uploadRequest("Equipment Loans")
	req.Description = ""

	project, err := svc.Import(context.Background(), "admin@uni.edu", req, "/tmp/report_1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "A report about loans.", project.Description)
	require.NotNil(t, project.ReportPath)
	assert.Equal(t, "/tmp/report_1.pdf", *project.ReportPath)
	assert.Equal(t, []string{"/tmp/report_1.pdf"}, parser.paths)
}

func TestImportKeepsGivenDescription(t *testing.T) {
	parser := &stubParser{summary: "ignored"}
	svc := NewArchiveService(newMemStore().repository().Project, parser, zap.NewNop())

	project, err := svc.Import(context.Background(), "admin@uni.edu", uploadRequest("Equipment Loans"), "/tmp/r.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Tracks equipment loans", project.Description)
	assert.Empty(t, parser.paths)
}

func TestImportUnreadableReport(t *testing.T) {
	svc := NewArchiveService(newMemStore().repository().Project, &stubParser{err: errors.New("no text content found in PDF")}, zap.NewNop())

	req := uploadRequest("Equipment Loans")
	req.Description = ""

	_, err := svc.Import(context.Background(), "admin@uni.edu", req, "/tmp/r.pdf")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBatchImporterRun(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "loans.pdf")
	require.NoError(t, os.WriteFile(report, []byte("%PDF-1.4"), 0644))
	notPDF := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notPDF, []byte("notes"), 0644))

	uploads := filepath.Join(dir, "uploads")
	storage := NewStorageService(uploads)
	require.NoError(t, storage.EnsureUploadDir())

	store := newMemStore()
	store.projects = []models.Project{{ID: 1, Title: "Taken", Description: "x", Year: 2024}}
	archive := NewArchiveService(store.repository().Project, &stubParser{summary: "From the report."}, zap.NewNop())

	fromReport := uploadRequest("From Report")
	fromReport.Description = ""
	badReport := uploadRequest("Bad Report")
	badReport.Description = ""

	jobs := []ImportJob{
		{Index: 1, Uploader: "admin", Request: uploadRequest("Plain Upload")},
		{Index: 2, Uploader: "admin", Request: fromReport, ReportPath: report},
		{Index: 3, Uploader: "admin", Request: uploadRequest("Taken")},
		{Index: 4, Uploader: "admin", Request: badReport, ReportPath: notPDF},
		{Index: 5, Uploader: "admin", Request: uploadRequest("Taken"), ReportPath: report},
	}

	outcomes := NewBatchImporter(archive, storage, 3, zap.NewNop()).Run(context.Background(), jobs)
	require.Len(t, outcomes, len(jobs))

	for i, out := range outcomes {
		assert.Equal(t, jobs[i].Index, out.Index)
	}
	assert.NoError(t, outcomes[0].Err)
	assert.NotZero(t, outcomes[0].ProjectID)
	assert.NoError(t, outcomes[1].Err)
	assert.True(t, outcomes[2].Skipped)
	assert.Error(t, outcomes[3].Err)
	assert.True(t, outcomes[4].Skipped)

	// Only the successful report import leaves a copy behind.
	entries, err := os.ReadDir(uploads)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	titles := make([]string, 0, len(store.projects))
	for _, p := range store.projects {
		titles = append(titles, p.Title)
	}
	sort.Strings(titles)
	assert.Equal(t, []string{"From Report", "Plain Upload", "Taken"}, titles)
}

func TestBatchImporterCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := newMemStore()
	archive := NewArchiveService(store.repository().Project, &stubParser{}, zap.NewNop())
	jobs := []ImportJob{
		{Index: 1, Request: uploadRequest("One")},
		{Index: 2, Request: uploadRequest("Two")},
	}

	outcomes := NewBatchImporter(archive, NewStorageService(t.TempDir()), 1, zap.NewNop()).Run(ctx, jobs)
	require.Len(t, outcomes, 2)
	for _, out := range outcomes {
		if out.Err != nil {
			assert.ErrorIs(t, out.Err, context.Canceled)
		}
	}
}
