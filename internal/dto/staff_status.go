package dto

// ConfirmStaffStatusRequest records one employee's status for a month.
type ConfirmStaffStatusRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Month      string `json:"month" validate:"required,len=7"` // 2006-01
	Status     string `json:"status" validate:"required,oneof=ACTIVE ON_LEAVE RESIGNED"`
	Note       string `json:"note" validate:"max=500"`
}

// FinalizeMonthRequest freezes a month's confirmations.
type FinalizeMonthRequest struct {
	Month string `json:"month" validate:"required,len=7"`
}
