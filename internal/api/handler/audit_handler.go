package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/boardkit/member-system/internal/core/ports"
)

// AuditHandler serves the recent auth event trail to operators.
type AuditHandler struct {
	audit ports.AuditRepository
}

func NewAuditHandler(audit ports.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List returns recent auth events, newest first.
//
// @Summary      Recent auth events
// @Tags         audit
// @Produce      json
// @Param        limit  query  int  false  "Max events to return (default 50)"
// @Success      200  {object}  auditResponse
// @Router       /admin/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	events, err := h.audit.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, auditResponse{Events: events, Count: len(events)})
}
