package employee

type EmployeeResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	BranchID     string  `json:"branch_id"`
	DepartmentID string  `json:"department_id"`
	DeviceUserID *string `json:"device_user_id,omitempty"`
	Status       string  `json:"status"`
}

func MapEmployeeToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		BranchID:     e.BranchID,
		DepartmentID: e.DepartmentID,
		DeviceUserID: e.DeviceUserID,
		Status:       string(e.Status),
	}
}
