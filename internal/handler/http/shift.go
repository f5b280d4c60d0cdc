package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	GetShift(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftRepo shift.ShiftRepository
}

func NewShiftHandler(shiftRepo shift.ShiftRepository) ShiftHandler {
	return &shiftHandlerImpl{
		shiftRepo: shiftRepo,
	}
}

// GetShift implements ShiftHandler.
func (h *shiftHandlerImpl) GetShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, err := h.shiftRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shift.MapShiftToResponse(s))
}

// ListShifts implements ShiftHandler.
func (h *shiftHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]shift.ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		resp = append(resp, shift.MapShiftToResponse(s))
	}
	response.Success(w, resp)
}
