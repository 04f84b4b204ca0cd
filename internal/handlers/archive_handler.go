package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/services"
)

type ArchiveHandler struct {
	archive        services.ArchiveService
	storageService services.StorageService
	maxFileSize    int64
}

func NewArchiveHandler(
	archive services.ArchiveService,
	storageService services.StorageService,
	maxFileSize int64,
) *ArchiveHandler {
	return &ArchiveHandler{
		archive:        archive,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleList handles GET /archive
func (h *ArchiveHandler) HandleList(c *fiber.Ctx) error {
	projects, err := h.archive.List(c.UserContext())
	if err != nil {
		return serviceError(err, "")
	}
	return c.JSON(projects)
}

// HandleGet handles GET /archive/:title
func (h *ArchiveHandler) HandleGet(c *fiber.Ctx) error {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid title")
	}

	project, err := h.archive.GetByTitle(c.UserContext(), title)
	if err != nil {
		return serviceError(err, fmt.Sprintf("Project with title '%s' not found", title))
	}
	return c.JSON(project)
}

// HandleUpload handles POST /admin/projects
func (h *ArchiveHandler) HandleUpload(c *fiber.Ctx) error {
	email, _ := currentEmail(c)

	var req models.ProjectUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	project, err := h.archive.Upload(c.UserContext(), email, req)
	if err != nil {
		return serviceError(err, "")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Project uploaded successfully",
		"id":      project.ID,
	})
}

// HandleImport handles POST /admin/projects/import. The form carries the
// report PDF in "report" and the project fields as JSON in "metadata".
func (h *ArchiveHandler) HandleImport(c *fiber.Ctx) error {
	email, _ := currentEmail(c)

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	var req models.ProjectUploadRequest
	metadata := form.Value["metadata"]
	if len(metadata) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "metadata is required",
		})
	}
	if err := json.Unmarshal([]byte(metadata[0]), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid metadata payload",
		})
	}

	reports := form.File["report"]
	if len(reports) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No report uploaded. Please upload the project report as 'report' PDF file.",
		})
	}
	report := reports[0]

	if report.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Report file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveReport(report)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save report file: %v", err),
		})
	}

	project, err := h.archive.Import(c.UserContext(), email, req, filePath)
	if err != nil {
		// Cleanup uploaded file if the project was not stored
		h.storageService.DeleteFile(filename)
		if errors.Is(err, services.ErrInvalidInput) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return serviceError(err, "")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Project imported successfully",
		"id":          project.ID,
		"description": project.Description,
	})
}
