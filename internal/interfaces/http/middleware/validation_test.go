package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type validatedPayload struct {
	Name string `json:"name" binding:"required,max=10"`
	URL  string `json:"url" binding:"omitempty,url"`
}

func newValidationTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()
	router := gin.New()
	router.POST("/echo", func(c *gin.Context) {
		var payload validatedPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload)
	})
	return router
}

func TestHandleValidationError_FieldDetails(t *testing.T) {
	router := newValidationTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(`{"url":"not a url"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"name"`)
	assert.Contains(t, w.Body.String(), "This field is required")
	assert.Contains(t, w.Body.String(), `"field":"url"`)
	assert.Contains(t, w.Body.String(), "Invalid URL format")
}

func TestHandleValidationError_MalformedJSON(t *testing.T) {
	router := newValidationTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(`{`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	assert.NotContains(t, w.Body.String(), `"details"`)
}

func TestHandleValidationError_ValidPayload(t *testing.T) {
	router := newValidationTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(`{"name":"crib"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
