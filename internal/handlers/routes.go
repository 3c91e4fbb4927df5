package handlers

import (
	"net/http"

	"github.com/dimitrije/eduadmin/internal/middleware"
	"github.com/dimitrije/eduadmin/internal/routes"
	"github.com/dimitrije/eduadmin/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog/log"
)

type RoutesHandler struct {
	table *routes.Table
}

func NewRoutesHandler(table *routes.Table) *RoutesHandler {
	return &RoutesHandler{table: table}
}

func (h *RoutesHandler) List(c *drift.Context) {
	all := h.table.All()
	response := make([]dto.RouteResponse, 0, len(all))
	for _, route := range all {
		response = append(response, NewRouteResponse(route))
	}
	_ = c.JSON(http.StatusOK, response)
}

func (h *RoutesHandler) Resolve(c *drift.Context) {
	path := c.QueryParam("path")
	if path == "" {
		c.BadRequest("path is required")
		return
	}

	route, ok := h.table.Resolve(path)
	if !ok {
		log.Debug().Str("request_id", middleware.GetRequestID(c)).Str("path", path).Msg("route not found")
		c.NotFound("route not found")
		return
	}

	_ = c.JSON(http.StatusOK, NewRouteResponse(route))
}

// NewRouteResponse flattens a route for JSON output.
func NewRouteResponse(route routes.Route) dto.RouteResponse {
	response := dto.RouteResponse{
		Path:  route.Path,
		Name:  route.Name,
		Title: route.Meta.Title,
		Icon:  route.Meta.Icon,
	}
	if route.Component != nil {
		response.Component = route.Component.Module()
	}
	return response
}
