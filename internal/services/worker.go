package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/repositories"
)

// ImportJob is one accepted project waiting to enter the archive.
type ImportJob struct {
	Index      int
	Uploader   string
	Request    models.ProjectUploadRequest
	ReportPath string
}

type ImportOutcome struct {
	Index     int
	Title     string
	ProjectID uint
	Skipped   bool
	Err       error
}

// BatchImporter archives projects with a fixed pool of workers. Report PDFs
// are parsed concurrently; each project is still written in its own
// transaction.
type BatchImporter interface {
	Run(ctx context.Context, jobs []ImportJob) []ImportOutcome
}

type batchImporter struct {
	archive     ArchiveService
	storage     StorageService
	concurrency int
	log         *zap.Logger
}

func NewBatchImporter(archive ArchiveService, storage StorageService, concurrency int, log *zap.Logger) BatchImporter {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &batchImporter{
		archive:     archive,
		storage:     storage,
		concurrency: concurrency,
		log:         log,
	}
}

func (w *batchImporter) Run(ctx context.Context, jobs []ImportJob) []ImportOutcome {
	outcomes := make([]ImportOutcome, len(jobs))
	jobQueue := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range jobQueue {
				outcomes[idx] = w.process(ctx, jobs[idx])
				w.logOutcome(workerID, outcomes[idx])
			}
		}(i + 1)
	}

	for i := range jobs {
		select {
		case jobQueue <- i:
		case <-ctx.Done():
			for j := i; j < len(jobs); j++ {
				outcomes[j] = ImportOutcome{Index: jobs[j].Index, Title: jobs[j].Request.Title, Err: ctx.Err()}
			}
			close(jobQueue)
			wg.Wait()
			return outcomes
		}
	}
	close(jobQueue)
	wg.Wait()

	return outcomes
}

func (w *batchImporter) process(ctx context.Context, job ImportJob) ImportOutcome {
	out := ImportOutcome{Index: job.Index, Title: job.Request.Title}

	var (
		project *models.Project
		err     error
	)

	if job.ReportPath == "" {
		project, err = w.archive.Upload(ctx, job.Uploader, job.Request)
	} else {
		var filename, stored string
		filename, stored, err = w.storage.CopyReport(job.ReportPath)
		if err != nil {
			out.Err = err
			return out
		}
		project, err = w.archive.Import(ctx, job.Uploader, job.Request, stored)
		if err != nil {
			w.storage.DeleteFile(filename)
		}
	}

	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			out.Skipped = true
			return out
		}
		out.Err = err
		return out
	}

	out.ProjectID = project.ID
	return out
}

func (w *batchImporter) logOutcome(workerID int, out ImportOutcome) {
	fields := []zap.Field{
		zap.Int("worker", workerID),
		zap.Int("index", out.Index),
		zap.String("title", out.Title),
	}
	switch {
	case out.Err != nil:
		w.log.Error("archive import failed", append(fields, zap.Error(out.Err))...)
	case out.Skipped:
		w.log.Info("archive import skipped, title exists", fields...)
	default:
		w.log.Info("archive import completed", append(fields, zap.Uint("project_id", out.ProjectID))...)
	}
}
