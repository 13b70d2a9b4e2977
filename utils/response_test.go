package utils_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyflap/skyflap-backend/models"
	"github.com/skyflap/skyflap-backend/responses"
	"github.com/skyflap/skyflap-backend/utils"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "api error keeps its status",
			err:        responses.NotFoundError{Msg: "Room not found."},
			wantStatus: http.StatusNotFound,
			wantMsg:    "Room not found.",
		},
		{
			name:       "bad request",
			err:        responses.BadRequestError{Msg: "roomID is required."},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "roomID is required.",
		},
		{
			name:       "plain error falls back to internal server error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			utils.HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp models.ApiResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}

func TestHandleSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	utils.HandleSuccess(rec, models.SuccessResponse(map[string]int{"rooms": 2}))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}
