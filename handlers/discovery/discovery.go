package discovery

import (
	"errors"

	"github.com/campusmatch/college-discovery-api/services/discovery"
	"github.com/campusmatch/college-discovery-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// DiscoveryHandler exposes the matching engine over HTTP
type DiscoveryHandler struct {
	engine *discovery.Engine
}

// NewDiscoveryHandler creates a new discovery handler
func NewDiscoveryHandler(engine *discovery.Engine) *DiscoveryHandler {
	return &DiscoveryHandler{engine: engine}
}

// Discover handles POST /api/v1/discover
func (h *DiscoveryHandler) Discover(c *fiber.Ctx) error {
	var req discovery.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.engine.Match(c.Context(), req)
	if err != nil {
		var validationErr *discovery.ValidationError
		if errors.As(err, &validationErr) {
			// Validation failures carry the field and reason back to the student
			return response.ValidationError(c, validationErr.Error())
		}

		var retrievalErr *discovery.RetrievalError
		if errors.As(err, &retrievalErr) {
			// Never leak internal query details to the caller
			return response.ServiceUnavailable(c, "College catalog is temporarily unavailable, please try again")
		}

		return response.InternalServerError(c, "Failed to assemble results, please try again")
	}

	return response.Success(c, result)
}

// BustCache handles POST /api/v1/admin/cache/bust
func (h *DiscoveryHandler) BustCache(c *fiber.Ctx) error {
	if err := h.engine.References().Bust(c.Context()); err != nil {
		return response.InternalServerError(c, "Failed to bust reference cache")
	}
	return response.SuccessWithMessage(c, "Reference cache busted", nil)
}
