package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type WorkLocationHandler interface {
	Add(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type workLocationHandlerImpl struct {
	workLocationService location.WorkLocationService
}

func NewWorkLocationHandler(workLocationService location.WorkLocationService) WorkLocationHandler {
	return &workLocationHandlerImpl{workLocationService: workLocationService}
}

// Add implements WorkLocationHandler.
func (h *workLocationHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	var req location.AddWorkLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddWorkLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workLocationService.AddWorkLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work location added successfully", result)
}

// List implements WorkLocationHandler.
func (h *workLocationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.workLocationService.ListWorkLocations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work locations fetched successfully", result)
}
