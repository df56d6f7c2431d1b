package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/strikelab/internal/connectors"
	"github.com/stitts-dev/strikelab/internal/services"
	"github.com/stitts-dev/strikelab/pkg/utils"
)

type ConnectorHandler struct {
	imports        *services.ImportService
	maxUploadBytes int64
}

func NewConnectorHandler(imports *services.ImportService, maxUploadBytes int64) *ConnectorHandler {
	return &ConnectorHandler{
		imports:        imports,
		maxUploadBytes: maxUploadBytes,
	}
}

// ListConnectors returns the connector catalog.
func (h *ConnectorHandler) ListConnectors(c *gin.Context) {
	utils.SendSuccess(c, connectors.Catalog())
}

// Import reads a raw vendor payload from the body. Name and session type may
// be passed as query parameters.
func (h *ConnectorHandler) Import(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if _, known := connectors.Describe(id); !known {
		utils.SendNotFound(c, "Unknown connector")
		return
	}

	body := c.Request.Body
	if h.maxUploadBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxUploadBytes)
	}
	payload, err := io.ReadAll(body)
	if err != nil {
		utils.SendValidationError(c, "Failed to read payload", err.Error())
		return
	}

	result, err := h.imports.ImportPayload(c.Request.Context(), id, payload, ownerID, c.Query("name"), c.Query("session_type"))
	if errors.Is(err, connectors.ErrConnectorUnavailable) {
		utils.SendError(c, http.StatusNotImplemented, utils.NewAppError(utils.ErrCodeValidation, "Connector not yet available", id))
		return
	}
	respondImport(c, result, err)
}
