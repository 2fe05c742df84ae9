package models

import "time"

// PageVisit is one recorded page load. Rows are insert-only; retention
// and cleanup are handled outside the application.
type PageVisit struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PageID    string    `json:"page_id" gorm:"not null"`
	VisitTime time.Time `json:"visit_time" gorm:"autoCreateTime"`
	Source    *string   `json:"source,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
	IPAddress *string   `json:"ip_address,omitempty"`
}

func (PageVisit) TableName() string {
	return "page_visits"
}
