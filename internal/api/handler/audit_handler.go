package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/baseapi/user-api/internal/core/ports"
)

// AuditHandler serves the admin-only security audit trail.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// Recent handles GET /audit/events. Admin access is enforced by the RBAC
// middleware on the route.
//
// @Summary      List recent security audit events
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of events (default 100)"
// @Success      200    {array}   auditEventResponse
// @Failure      401    {object}  map[string]any
// @Failure      403    {object}  map[string]any
// @Router       /audit/events [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	events, err := h.service.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	resp := make([]auditEventResponse, 0, len(events))
	for _, ev := range events {
		resp = append(resp, auditEventResponse{
			Kind:      string(ev.Kind),
			Subject:   ev.Subject,
			Email:     ev.Email,
			RemoteIP:  ev.RemoteIP,
			Detail:    ev.Detail,
			CreatedAt: ev.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
