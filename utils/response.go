package utils

import (
	"encoding/json"
	"net/http"

	"github.com/skyflap/skyflap-backend/models"
	"github.com/skyflap/skyflap-backend/responses"
)

func HandleSuccess(w http.ResponseWriter, response models.ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// HandleError checks the error type and sends an appropriate response
func HandleError(w http.ResponseWriter, err error) {
	apiErr, ok := err.(responses.APIError)
	if !ok {
		apiErr = responses.InternalServerError{Msg: "Internal Server Error"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode())
	json.NewEncoder(w).Encode(models.ErrorResponse(apiErr.Error()))
}
