package handler

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eon-group/expiring-link-service/internal/app/service"
)

const resolvePathPrefix = "/r"

// LinkDeps groups dependencies required by the link management handlers.
type LinkDeps struct {
	Logger *zap.Logger
	Links  service.LinkService
}

// LinkHandler implements the create and wake endpoints.
type LinkHandler struct {
	logger *zap.Logger
	links  service.LinkService
}

// NewLinkHandler creates a link handler with the provided dependencies.
func NewLinkHandler(deps LinkDeps) *LinkHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkHandler{
		logger: logger,
		links:  deps.Links,
	}
}

// Register wires the key-protected routes onto the provided router.
func (h *LinkHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Post("/create", protect, h.Create)
	router.Get("/w", protect, h.Wake)
}

// CreateLinkRequest represents the request body for registering a link.
type CreateLinkRequest struct {
	URL                string `json:"url"`
	ExpiresIn          int    `json:"expiresIn"`
	ExpiresOnAccess    bool   `json:"expiresOnAccess"`
	ExpiredRedirectURL string `json:"expiredRedirectUrl"`
}

// CreateLinkResponse carries the fully-qualified resolve URL for a new link.
type CreateLinkResponse struct {
	URL string `json:"url"`
}

// Create handles POST /create.
//
// Validation collects every field failure into one response instead of
// stopping at the first, so callers can fix their request in a single pass.
func (h *LinkHandler) Create(c *fiber.Ctx) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return c.Status(fiber.StatusBadRequest).SendString("Request Body is required")
	}

	var req CreateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Request Body is required")
	}

	errs := map[string]string{}
	if req.URL == "" {
		errs["url"] = "Url is required"
	}
	if req.ExpiresIn <= 0 {
		errs["expiresIn"] = "Expiration (in minutes) must be greater than 0"
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	link, err := h.links.CreateLink(ctx, service.CreateLinkInput{
		URL:                req.URL,
		ExpiresIn:          req.ExpiresIn,
		ExpiresOnAccess:    req.ExpiresOnAccess,
		ExpiredRedirectURL: req.ExpiredRedirectURL,
	})
	if err != nil {
		// Store detail stays in the log; the caller gets a generic failure.
		h.logger.Error("failed to create link", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create link",
		})
	}

	resolveURL := fmt.Sprintf("%s://%s%s/%s",
		c.Protocol(), c.Hostname(), resolvePathPrefix, link.Identifier)
	return c.JSON(CreateLinkResponse{URL: resolveURL})
}

// Wake handles GET /w. It does nothing on purpose; uptime checks ping it to
// keep the instance warm.
func (h *LinkHandler) Wake(c *fiber.Ctx) error {
	// SendStatus would fill the body with the status text; the warm-up
	// response is defined as empty.
	return c.Status(fiber.StatusOK).SendString("")
}
