package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eon-group/expiring-link-service/internal/app/service"
	"github.com/eon-group/expiring-link-service/internal/http/view"
)

// ResolveDeps groups dependencies required by the resolve handlers.
type ResolveDeps struct {
	Logger *zap.Logger
	Links  service.LinkService
}

// ResolveHandler implements the public redirect flow.
type ResolveHandler struct {
	logger *zap.Logger
	links  service.LinkService
}

// NewResolveHandler creates a resolve handler with the provided dependencies.
func NewResolveHandler(deps ResolveDeps) *ResolveHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResolveHandler{
		logger: logger,
		links:  deps.Links,
	}
}

// Register wires the public routes onto the provided router.
func (h *ResolveHandler) Register(router fiber.Router) {
	router.Get("/health", h.Health)
	router.Get("/r/:identifier", h.Resolve)
}

// Health is a simple endpoint so we know the service is running.
func (h *ResolveHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "expiring-links",
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Resolve handles GET /r/:identifier and answers with a redirect or the
// expired page. It never returns an error status: an identifier we cannot
// resolve looks exactly like an expired link to the visitor.
func (h *ResolveHandler) Resolve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("identifier"))
	if err != nil {
		// Malformed identifiers skip the store read entirely.
		h.logger.Debug("rejecting malformed link identifier",
			zap.String("identifier", c.Params("identifier")))
		return h.expiredPage(c)
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	res := h.links.Resolve(ctx, id.String())
	switch res.Kind {
	case service.ResolveRedirect, service.ResolveExpiredRedirect:
		return c.Redirect(res.Location, fiber.StatusFound)
	default:
		return h.expiredPage(c)
	}
}

func (h *ResolveHandler) expiredPage(c *fiber.Ctx) error {
	return c.
		Type("html", "utf-8").
		SendString(view.ExpiredLinkHTML)
}
