package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deal enums carry the Hebrew labels the admin UI displays. They are
// stored verbatim, not translated.
const (
	DealStatusOpen      = "פתוחה"
	DealStatusCompleted = "הושלמה"
	DealStatusNotClosed = "לא נסגרה"
)

var (
	DealSources    = []string{"פייסבוק", "אינסטגרם", "אתר", "המלצה", "אחר"}
	DealPackages   = []string{"בסיסית", "פרימיום", "מותאמת אישית"}
	PaymentMethods = []string{"מזומן", "אשראי", "ביט", "העברה בנקאית"}
	DealStatuses   = []string{DealStatusOpen, DealStatusCompleted, DealStatusNotClosed}
)

// Deal is a sales pipeline record. It is tracked independently of
// ContactForm: both describe a prospective customer but carry no
// linking key, matching the admin workflow they came from.
type Deal struct {
	ID            string     `json:"id" gorm:"type:uuid;primaryKey"`
	ClientName    string     `json:"client_name" gorm:"not null"`
	Phone         string     `json:"phone" gorm:"not null"`
	Email         string     `json:"email" gorm:"not null"`
	Source        string     `json:"source" gorm:"not null"`
	PackageType   string     `json:"package_type" gorm:"not null"`
	AmountPaid    *float64   `json:"amount_paid"`
	PaymentMethod *string    `json:"payment_method"`
	Status        string     `json:"status" gorm:"not null"`
	ClosingDate   *time.Time `json:"closing_date" gorm:"type:date"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Deal) TableName() string {
	return "deals"
}

func (d *Deal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = DealStatusOpen
	}
	return nil
}

type DealSummary struct {
	TotalRevenue float64 `json:"total_revenue"`
	Completed    int     `json:"completed"`
	Open         int     `json:"open"`
	NotClosed    int     `json:"not_closed"`
}

// SummarizeDeals recomputes revenue and status counts from the full
// deal set. Revenue sums amount_paid over completed deals only, with a
// missing amount counted as zero.
func SummarizeDeals(deals []Deal) DealSummary {
	var s DealSummary
	for _, d := range deals {
		switch d.Status {
		case DealStatusCompleted:
			s.Completed++
			if d.AmountPaid != nil {
				s.TotalRevenue += *d.AmountPaid
			}
		case DealStatusOpen:
			s.Open++
		case DealStatusNotClosed:
			s.NotClosed++
		}
	}
	return s
}

// FilterDeals combines four independent predicates with AND: free text
// over name/email/phone and exact matches on status, package and source.
// Empty predicates match everything.
func FilterDeals(deals []Deal, search, status, packageType, source string) []Deal {
	filtered := make([]Deal, 0, len(deals))
	for _, d := range deals {
		if search != "" && !containsFold(d.ClientName, search) &&
			!containsFold(d.Email, search) && !contains(d.Phone, search) {
			continue
		}
		if status != "" && d.Status != status {
			continue
		}
		if packageType != "" && d.PackageType != packageType {
			continue
		}
		if source != "" && d.Source != source {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func IsValidDealSource(s string) bool  { return oneOf(s, DealSources) }
func IsValidDealPackage(s string) bool { return oneOf(s, DealPackages) }
func IsValidDealStatus(s string) bool  { return oneOf(s, DealStatuses) }

func IsValidPaymentMethod(s *string) bool {
	if s == nil {
		return true
	}
	return oneOf(*s, PaymentMethods)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}
