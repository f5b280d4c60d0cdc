package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/employee"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	GetEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeHandler(employeeRepo employee.EmployeeRepository) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeRepo: employeeRepo,
	}
}

// GetEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "employeeID")

	e, err := h.employeeRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.MapEmployeeToResponse(e))
}

// ListEmployees implements EmployeeHandler.
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := employee.Filter{}
	if branchID := query.Get("branch_id"); branchID != "" {
		filter.BranchID = &branchID
	}
	if departmentID := query.Get("department_id"); departmentID != "" {
		filter.DepartmentID = &departmentID
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}

	employees, err := h.employeeRepo.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.MapEmployeeToResponse(e))
	}
	response.Success(w, resp)
}
