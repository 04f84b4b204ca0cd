package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/capstone-matcher/internal/repositories"
	"alfredoptarigan/capstone-matcher/internal/services"
)

const (
	localsRequestID = "request_id"
	localsEmail     = "user_email"
	localsRole      = "user_role"

	RoleStudent = "student"
	RoleAdmin   = "admin"
)

const requestIDMaxLen = 64

// ErrorHandler renders every error returned from a handler as
// {"error": ..., "code": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

// RequestID reuses X-Request-ID when the caller sent a sane one.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}
		c.Locals(localsRequestID, rid)
		c.Set(fiber.HeaderXRequestID, rid)
		return c.Next()
	}
}

func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				c.Status(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		rid, _ := c.Locals(localsRequestID).(string)
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.String("request_id", rid),
			zap.Duration("latency", time.Since(start)),
		}

		switch {
		case status >= 500:
			log.Error("request failed", append(fields, zap.Error(chainErr))...)
		case status >= 400:
			log.Warn("client error", fields...)
		default:
			log.Info("request completed", fields...)
		}
		return nil
	}
}

// Identity reads the caller forwarded by the authenticating gateway.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if email := c.Get("X-User-Email"); email != "" {
			c.Locals(localsEmail, email)
			role := c.Get("X-User-Role")
			if role == "" {
				role = RoleStudent
			}
			c.Locals(localsRole, role)
		}
		return c.Next()
	}
}

// RequireRole rejects callers without an identity or with another role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := currentEmail(c); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
		}
		if r, _ := c.Locals(localsRole).(string); r != role {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

func currentEmail(c *fiber.Ctx) (string, bool) {
	email, ok := c.Locals(localsEmail).(string)
	return email, ok && email != ""
}

// serviceError maps service and repository errors to HTTP errors.
func serviceError(err error, notFound string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, notFound)
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrNotTeamMember),
		errors.Is(err, services.ErrTeamHasProposal),
		errors.Is(err, services.ErrDuplicateMember),
		errors.Is(err, services.ErrSupervisorNotFound),
		errors.Is(err, services.ErrAlreadyRequested),
		errors.Is(err, services.ErrAlreadyAccepted),
		errors.Is(err, repositories.ErrDuplicateEntry):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrDuplicateTitle):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotTeamLeader):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrTeamNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRecommenderUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, services.ErrRecommenderUnavailable.Error())
	case errors.Is(err, services.ErrRecommenderBadResponse):
		return fiber.NewError(fiber.StatusBadGateway, services.ErrRecommenderBadResponse.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
}
