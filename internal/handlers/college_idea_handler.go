package handlers

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/services"
)

type CollegeIdeaHandler struct {
	ideas services.CollegeIdeaService
}

func NewCollegeIdeaHandler(ideas services.CollegeIdeaService) *CollegeIdeaHandler {
	return &CollegeIdeaHandler{ideas: ideas}
}

func (h *CollegeIdeaHandler) HandleList(c *fiber.Ctx) error {
	ideas, err := h.ideas.List(c.UserContext())
	if err != nil {
		return serviceError(err, "")
	}
	return c.JSON(ideas)
}

func (h *CollegeIdeaHandler) HandleGet(c *fiber.Ctx) error {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid title")
	}

	idea, err := h.ideas.GetByTitle(c.UserContext(), title)
	if err != nil {
		return serviceError(err, fmt.Sprintf("College idea with title '%s' not found", title))
	}
	return c.JSON(idea)
}

// HandleRequest handles POST /student/college-idea-requests
func (h *CollegeIdeaHandler) HandleRequest(c *fiber.Ctx) error {
	email, ok := currentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}

	var body models.CollegeIdeaRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if body.CollegeIdeaTitle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "college_idea_title is required",
		})
	}

	resp, err := h.ideas.Request(c.UserContext(), email, body.CollegeIdeaTitle)
	if err != nil {
		return serviceError(err, fmt.Sprintf("College idea with title '%s' not found", body.CollegeIdeaTitle))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
