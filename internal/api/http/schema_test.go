package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewSchemaHandler().RegisterRoutes(router)

	rr := performRequest(t, router, "GET", "/schema")
	require.Equal(t, http.StatusOK, rr.Code)

	models, ok := decodeJSON(t, rr)["models"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, models, "project")
	require.Contains(t, models, "tuningjob")

	project := models["project"].(map[string]any)
	assert.Equal(t, "Project", project["title"])
	assert.Equal(t, "object", project["type"])
	assert.Equal(t, []any{"name"}, project["required"])

	props := project["properties"].(map[string]any)
	require.Contains(t, props, "tags")
	assert.Equal(t, "array", props["tags"].(map[string]any)["type"])

	job := models["tuningjob"].(map[string]any)
	assert.Equal(t, []any{"objective"}, job["required"])
	status := job["properties"].(map[string]any)["status"].(map[string]any)
	assert.Equal(t, "queued", status["default"])
}
