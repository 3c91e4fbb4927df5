package handlers

import (
	"net/http"
	"testing"

	"github.com/dimitrije/eduadmin/internal/routes"
	"github.com/dimitrije/eduadmin/pkg/dto"
	"github.com/dimitrije/eduadmin/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRoutesTest(t *testing.T) *testutil.HTTPTestClient {
	t.Helper()
	h := NewRoutesHandler(routes.Default())

	app := drift.New()
	console := app.Group("/__console")
	console.Get("/health", Health)
	console.Get("/routes", h.List)
	console.Get("/routes/resolve", h.Resolve)
	return testutil.NewHTTPTestClient(t, app)
}

func TestHealth(t *testing.T) {
	client := setupRoutesTest(t)

	rec := client.GET("/__console/health", nil)

	testutil.AssertStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRoutesHandler_List(t *testing.T) {
	client := setupRoutesTest(t)

	rec := client.GET("/__console/routes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response []dto.RouteResponse
	testutil.ParseJSON(t, rec, &response)
	require.Len(t, response, 3)
	assert.Equal(t, dto.RouteResponse{
		Path:      "/collection",
		Name:      "Collection",
		Component: "views/collection/collection.vue",
		Title:     "文件夹管理",
		Icon:      "FolderAddOutlined",
	}, response[0])
	assert.Equal(t, "School", response[1].Name)
	assert.Equal(t, "/system/school", response[2].Path)
}

func TestRoutesHandler_Resolve(t *testing.T) {
	client := setupRoutesTest(t)

	rec := client.GET("/__console/routes/resolve?path=/School/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.RouteResponse
	testutil.ParseJSON(t, rec, &response)
	assert.Equal(t, "School", response.Name)
	assert.Equal(t, "views/school/index.vue", response.Component)
	assert.Equal(t, "BookOutlined", response.Icon)
}

func TestRoutesHandler_Resolve_NotFound(t *testing.T) {
	client := setupRoutesTest(t)

	rec := client.GET("/__console/routes/resolve?path=/nowhere", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "route not found")
}

func TestRoutesHandler_Resolve_MissingPath(t *testing.T) {
	client := setupRoutesTest(t)

	rec := client.GET("/__console/routes/resolve", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "path is required")
}

func TestNewRouteResponse_NilComponent(t *testing.T) {
	response := NewRouteResponse(routes.Route{Path: "/x", Name: "X"})

	assert.Equal(t, "/x", response.Path)
	assert.Empty(t, response.Component)
}
