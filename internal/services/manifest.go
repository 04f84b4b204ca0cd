package services

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"alfredoptarigan/capstone-matcher/internal/models"
)

// ArchiveManifest lists accepted projects for bulk import.
type ArchiveManifest struct {
	Uploader string                 `yaml:"uploader"`
	Projects []ArchiveManifestEntry `yaml:"projects"`
}

type ArchiveManifestEntry struct {
	models.ProjectUploadRequest `yaml:",inline"`
	Uploader                    string `yaml:"uploader"`
	Report                      string `yaml:"report"`
}

// LoadManifest reads a YAML manifest. Report paths are resolved relative to
// the manifest's directory.
func LoadManifest(path string) ([]ImportJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest ArchiveManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	base := filepath.Dir(path)
	jobs := make([]ImportJob, 0, len(manifest.Projects))
	for i, entry := range manifest.Projects {
		uploader := entry.Uploader
		if uploader == "" {
			uploader = manifest.Uploader
		}

		report := entry.Report
		if report != "" && !filepath.IsAbs(report) {
			report = filepath.Join(base, report)
		}

		if report == "" && entry.Description == "" {
			return nil, fmt.Errorf("manifest entry %d (%q): description or report is required", i+1, entry.Title)
		}

		jobs = append(jobs, ImportJob{
			Index:      i + 1,
			Uploader:   uploader,
			Request:    entry.ProjectUploadRequest,
			ReportPath: report,
		})
	}
	return jobs, nil
}
