package models

import (
	"time"
)

// Lead statuses. A NULL status means the inquiry is new and untouched.
const (
	LeadStatusPending   = "pending"
	LeadStatusCompleted = "completed"
	LeadStatusCancelled = "cancelled"
)

const (
	PackageBasic   = "basic"
	PackagePremium = "premium"
)

type ContactForm struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
	FullName      string    `json:"full_name" gorm:"not null"`
	Email         string    `json:"email" gorm:"not null"`
	Phone         string    `json:"phone" gorm:"not null"`
	PackageChoice string    `json:"package_choice" gorm:"default:basic"` // basic, premium
	Status        *string   `json:"status,omitempty"`                    // pending, completed, cancelled; nil = new
}

func (ContactForm) TableName() string {
	return "contact_forms"
}

// IsValidLeadStatus reports whether s is an assignable lead status.
// nil is valid and clears the lead back to "new".
func IsValidLeadStatus(s *string) bool {
	if s == nil {
		return true
	}
	switch *s {
	case LeadStatusPending, LeadStatusCompleted, LeadStatusCancelled:
		return true
	}
	return false
}

type Statistics struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`
	Pending         int `json:"pending"`
	Cancelled       int `json:"cancelled"`
	BasicPackages   int `json:"basic_packages"`
	PremiumPackages int `json:"premium_packages"`
}

// CalculateStatistics scans the full lead set. It is recomputed on every
// fetch rather than maintained incrementally.
func CalculateStatistics(forms []ContactForm) Statistics {
	stats := Statistics{Total: len(forms)}
	for _, f := range forms {
		if f.Status != nil {
			switch *f.Status {
			case LeadStatusCompleted:
				stats.Completed++
			case LeadStatusPending:
				stats.Pending++
			case LeadStatusCancelled:
				stats.Cancelled++
			}
		}
		switch f.PackageChoice {
		case PackagePremium:
			stats.PremiumPackages++
		default:
			stats.BasicPackages++
		}
	}
	return stats
}

// FilterLeads applies the admin search box: case-insensitive substring
// match on name or email, plain substring match on phone.
func FilterLeads(forms []ContactForm, search string) []ContactForm {
	if search == "" {
		return forms
	}
	filtered := make([]ContactForm, 0, len(forms))
	for _, f := range forms {
		if containsFold(f.FullName, search) || containsFold(f.Email, search) ||
			contains(f.Phone, search) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
