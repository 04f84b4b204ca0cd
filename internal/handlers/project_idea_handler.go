package handlers

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/services"
)

const (
	msgAdmitted = "Congratulations! Your project idea has been added successfully"
	msgRejected = "There are projects similar to your idea"
)

type ProjectIdeaHandler struct {
	teamIdeas services.TeamIdeaService
}

func NewProjectIdeaHandler(teamIdeas services.TeamIdeaService) *ProjectIdeaHandler {
	return &ProjectIdeaHandler{teamIdeas: teamIdeas}
}

// HandleAddProjectIdea handles POST /project-ideas
func (h *ProjectIdeaHandler) HandleAddProjectIdea(c *fiber.Ctx) error {
	email, ok := currentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}

	var req models.ProjectIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	result, err := h.teamIdeas.AddProjectIdea(c.UserContext(), email, req)
	if err != nil {
		return serviceError(err, "team not found")
	}

	switch r := result.(type) {
	case services.Admitted:
		id := r.ProposalID
		return c.JSON(models.ProjectIdeaResponse{
			Success:            true,
			Message:            msgAdmitted,
			ProjectID:          &id,
			MaxSimilarityScore: formatScore(r.MaxSimilarity),
			Status:             string(models.ProposalPending),
			SimilarProjects:    []models.SimilarProject{},
		})
	case services.Rejected:
		similar := make([]models.SimilarProject, len(r.Matches))
		for i, m := range r.Matches {
			similar[i] = models.SimilarProject{
				Source:          m.Source,
				Title:           m.Title,
				SimilarityScore: formatScore(m.Score),
			}
		}
		return c.JSON(models.ProjectIdeaResponse{
			Success:            false,
			Message:            msgRejected,
			ProjectID:          nil,
			MaxSimilarityScore: formatScore(r.MaxSimilarity),
			Status:             string(models.ProposalRejected),
			SimilarProjects:    similar,
		})
	case services.Failed:
		return admissionFailure(r)
	}

	return fiber.NewError(fiber.StatusInternalServerError, "unknown admission result")
}

// HandleListTeamIdeas handles GET /team-ideas
func (h *ProjectIdeaHandler) HandleListTeamIdeas(c *fiber.Ctx) error {
	ideas, err := h.teamIdeas.List(c.UserContext())
	if err != nil {
		return serviceError(err, "")
	}
	return c.JSON(ideas)
}

// HandleGetTeamIdea handles GET /team-ideas/:title
func (h *ProjectIdeaHandler) HandleGetTeamIdea(c *fiber.Ctx) error {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid title")
	}

	detail, err := h.teamIdeas.GetByTitle(c.UserContext(), title)
	if err != nil {
		return serviceError(err, fmt.Sprintf("Team project with title '%s' not found", title))
	}
	return c.JSON(detail)
}

func admissionFailure(f services.Failed) error {
	switch f.Kind {
	case services.FailureInvalidInput:
		return fiber.NewError(fiber.StatusBadRequest, "title and description are required")
	case services.FailureTeamNotFound:
		return fiber.NewError(fiber.StatusNotFound, "team not found")
	case services.FailureTeamHasProposal:
		return fiber.NewError(fiber.StatusBadRequest, services.ErrTeamHasProposal.Error())
	case services.FailureTitleConflict:
		return fiber.NewError(fiber.StatusConflict, "a project idea with this title already exists")
	case services.FailureBusy, services.FailureCorpusUnavailable:
		return fiber.NewError(fiber.StatusServiceUnavailable, "the system could not process your request, please try again")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "the system could not process your request")
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}
