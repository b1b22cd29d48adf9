package models

import "time"

// Inspection is a scored store visit performed by an inspector.
type Inspection struct {
	ID          string    `db:"id" json:"id"`
	StoreID     string    `db:"store_id" json:"store_id"`
	InspectorID string    `db:"inspector_id" json:"inspector_id"`
	VisitDate   time.Time `db:"visit_date" json:"visit_date"`
	TotalScore  float64   `db:"total_score" json:"total_score"`
	Grade       string    `db:"grade" json:"grade"`
	Note        string    `db:"note" json:"note"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// InspectionItem is a single scored criterion within an inspection.
type InspectionItem struct {
	ID           string  `db:"id" json:"id"`
	InspectionID string  `db:"inspection_id" json:"inspection_id"`
	Category     string  `db:"category" json:"category"`
	Criterion    string  `db:"criterion" json:"criterion"`
	Score        float64 `db:"score" json:"score"`
	Weight       float64 `db:"weight" json:"weight"`
}

// InspectionDetail bundles an inspection with its items.
type InspectionDetail struct {
	Inspection
	Items []InspectionItem `json:"items"`
}

// InspectionFilter narrows down inspection listings.
type InspectionFilter struct {
	StoreID   string
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
	SortOrder string
}
