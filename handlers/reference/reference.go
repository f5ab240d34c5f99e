package reference

import (
	"github.com/campusmatch/college-discovery-api/services/discovery"
	"github.com/campusmatch/college-discovery-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// ReferenceHandler serves the near-static reference lists (streams,
// interests) from the engine's TTL cache
type ReferenceHandler struct {
	refs *discovery.ReferenceCache
}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler(refs *discovery.ReferenceCache) *ReferenceHandler {
	return &ReferenceHandler{refs: refs}
}

// ListStreams handles GET /api/v1/streams
func (h *ReferenceHandler) ListStreams(c *fiber.Ctx) error {
	streams, err := h.refs.Streams(c.Context())
	if err != nil {
		return response.ServiceUnavailable(c, "College catalog is temporarily unavailable, please try again")
	}
	return response.Success(c, streams)
}

// ListInterests handles GET /api/v1/interests
func (h *ReferenceHandler) ListInterests(c *fiber.Ctx) error {
	interests, err := h.refs.Interests(c.Context())
	if err != nil {
		return response.ServiceUnavailable(c, "College catalog is temporarily unavailable, please try again")
	}
	return response.Success(c, interests)
}
