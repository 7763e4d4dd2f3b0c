package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbridge-ai/openbridge/internal/gateway"
	"github.com/openbridge-ai/openbridge/pkg/api"
)

type ModelHandler struct {
	service gateway.Service
}

func NewModelHandler(service gateway.Service) *ModelHandler {
	return &ModelHandler{service: service}
}

// ListModels enumerates all models across providers in first-seen order.
// Provider fetch failures degrade to empty lists inside the gateway, so
// this only errors on a fault in the routing core itself.
func (h *ModelHandler) ListModels(c *gin.Context) {
	records, err := h.service.ListModels(c.Request.Context())
	if err != nil {
		_ = c.Error(api.InternalError("Failed to fetch models", err))
		return
	}

	c.JSON(http.StatusOK, api.NewModelList(records))
}
