package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"BAD_REQUEST", http.StatusBadRequest},
		{"NOT_CONNECTED", http.StatusConflict},
		{"SYNC_IN_PROGRESS", http.StatusConflict},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"INVALID_SOURCE", http.StatusBadRequest},
		{"INVALID_CATEGORY", http.StatusBadRequest},
		{"INVALID_PRICE", http.StatusBadRequest},
		{"REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("NOT_FOUND", "Item not found", "req-123")
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
