package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/openbridge-ai/openbridge/internal/gateway"
	"github.com/openbridge-ai/openbridge/pkg/api"
)

type ChatHandler struct {
	service gateway.Service
}

func NewChatHandler(service gateway.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// CreateCompletion relays the request body to the provider resolved from
// its "model" field. The body is read raw and forwarded verbatim: the
// gateway takes no opinion on the completion schema beyond that one field.
func (h *ChatHandler) CreateCompletion(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		_ = c.Error(api.InternalError("Failed to read request body", err))
		return
	}

	result, err := h.service.Forward(c.Request.Context(), body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// Relay status and body untouched; the upstream response is opaque.
	c.Data(result.StatusCode, "application/json", result.Body)
}
