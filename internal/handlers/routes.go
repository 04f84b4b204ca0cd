package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	ProjectIdea    *ProjectIdeaHandler
	Archive        *ArchiveHandler
	CollegeIdea    *CollegeIdeaHandler
	Recommendation *RecommendationHandler
}

// Register mounts every route under /api/v1.
func Register(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1", Identity())

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/team-ideas", h.ProjectIdea.HandleListTeamIdeas)
	api.Get("/team-ideas/:title", h.ProjectIdea.HandleGetTeamIdea)
	api.Get("/archive", h.Archive.HandleList)
	api.Get("/archive/:title", h.Archive.HandleGet)
	api.Get("/college-ideas", h.CollegeIdea.HandleList)
	api.Get("/college-ideas/:title", h.CollegeIdea.HandleGet)

	student := RequireRole(RoleStudent)
	api.Post("/project-ideas", student, h.ProjectIdea.HandleAddProjectIdea)
	api.Post("/student/college-idea-requests", student, h.CollegeIdea.HandleRequest)
	api.Get("/student/recommendations", student, h.Recommendation.HandleRecommendTeams)
	api.Get("/team/recommendations", student, h.Recommendation.HandleRecommendStudents)

	admin := api.Group("/admin", RequireRole(RoleAdmin))
	admin.Post("/projects", h.Archive.HandleUpload)
	admin.Post("/projects/import", h.Archive.HandleImport)
}
