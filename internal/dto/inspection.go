package dto

import "time"

// InspectionItemInput is one scored criterion in a submitted inspection.
type InspectionItemInput struct {
	Category  string  `json:"category" validate:"required,max=64"`
	Criterion string  `json:"criterion" validate:"required,max=200"`
	Score     float64 `json:"score" validate:"min=0,max=100"`
	Weight    float64 `json:"weight" validate:"gt=0"`
}

// CreateInspectionRequest submits a scored store visit.
type CreateInspectionRequest struct {
	StoreID   string                `json:"store_id" validate:"required,uuid"`
	VisitDate time.Time             `json:"visit_date" validate:"required"`
	Note      string                `json:"note" validate:"max=2000"`
	Items     []InspectionItemInput `json:"items" validate:"required,min=1,dive"`
}

// InspectionReportResponse acknowledges an async report build.
type InspectionReportResponse struct {
	ReportID    string `json:"report_id"`
	DownloadURL string `json:"download_url"`
	ExpiresIn   string `json:"expires_in"`
}
