package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/capstone-matcher/internal/services"
)

type RecommendationHandler struct {
	recommendations services.RecommendationService
}

func NewRecommendationHandler(recommendations services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// HandleRecommendTeams handles GET /student/recommendations
func (h *RecommendationHandler) HandleRecommendTeams(c *fiber.Ctx) error {
	email, ok := currentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}

	teams, err := h.recommendations.RecommendTeams(c.UserContext(), email)
	if err != nil {
		return serviceError(err, "user not found")
	}
	return c.JSON(teams)
}

// HandleRecommendStudents handles GET /team/recommendations
func (h *RecommendationHandler) HandleRecommendStudents(c *fiber.Ctx) error {
	email, ok := currentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}

	users, err := h.recommendations.RecommendStudents(c.UserContext(), email)
	if err != nil {
		return serviceError(err, "team not found")
	}
	return c.JSON(users)
}
