// Package export renders filtered record sets as downloadable files:
// BOM-prefixed CSV with the Hebrew column headers the dashboard shows,
// and a JSON snapshot for full backups.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"launchsite-backend/internal/analytics"
	"launchsite-backend/internal/models"
)

// utf8BOM makes spreadsheet tools detect the encoding so Hebrew
// headers survive the round trip.
const utf8BOM = "\uFEFF"

var leadStatusLabels = map[string]string{
	models.LeadStatusCompleted: "טופל",
	models.LeadStatusPending:   "בטיפול",
	models.LeadStatusCancelled: "בוטל",
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LeadsCSV renders the (already filtered) lead set with display labels.
func LeadsCSV(forms []models.ContactForm) ([]byte, error) {
	headers := []string{"תאריך", "שעה", "שם מלא", "טלפון", "אימייל", "חבילה", "סטטוס"}

	rows := make([][]string, 0, len(forms))
	for _, f := range forms {
		pkg := "בסיסית"
		if f.PackageChoice == models.PackagePremium {
			pkg = "פרימיום"
		}
		status := "חדש"
		if f.Status != nil {
			if label, ok := leadStatusLabels[*f.Status]; ok {
				status = label
			}
		}
		rows = append(rows, []string{
			f.CreatedAt.Format("02/01/2006"),
			f.CreatedAt.Format("15:04"),
			f.FullName,
			f.Phone,
			f.Email,
			pkg,
			status,
		})
	}
	return writeCSV(headers, rows)
}

// DealsCSV renders the (already filtered) deal set.
func DealsCSV(deals []models.Deal) ([]byte, error) {
	headers := []string{
		"תאריך יצירה", "שם הלקוח", "טלפון", "אימייל", "מקור הגעה",
		"חבילה", "סכום ששולם", "אמצעי תשלום", "סטטוס", "תאריך סגירה", "הערות",
	}

	rows := make([][]string, 0, len(deals))
	for _, d := range deals {
		amount := ""
		if d.AmountPaid != nil {
			amount = strconv.FormatFloat(*d.AmountPaid, 'f', -1, 64)
		}
		payment := ""
		if d.PaymentMethod != nil {
			payment = *d.PaymentMethod
		}
		closing := ""
		if d.ClosingDate != nil {
			closing = d.ClosingDate.Format("02/01/2006")
		}
		notes := ""
		if d.Notes != nil {
			notes = *d.Notes
		}
		rows = append(rows, []string{
			d.CreatedAt.Format("02/01/2006"),
			d.ClientName,
			d.Phone,
			d.Email,
			d.Source,
			d.PackageType,
			amount,
			payment,
			d.Status,
			closing,
			notes,
		})
	}
	return writeCSV(headers, rows)
}

// VisitsCSV renders the raw visit log with normalized sources.
func VisitsCSV(visits []models.PageVisit) ([]byte, error) {
	headers := []string{"תאריך", "שעה", "דף", "מקור", "דפדפן"}

	rows := make([][]string, 0, len(visits))
	for _, v := range visits {
		source := ""
		if v.Source != nil {
			source = *v.Source
		}
		agent := ""
		if v.UserAgent != nil {
			agent = *v.UserAgent
		}
		rows = append(rows, []string{
			v.VisitTime.Format("02/01/2006"),
			v.VisitTime.Format("15:04"),
			v.PageID,
			analytics.NormalizeSource(source),
			agent,
		})
	}
	return writeCSV(headers, rows)
}

type Backup struct {
	Timestamp time.Time  `json:"timestamp"`
	Data      BackupData `json:"data"`
}

type BackupData struct {
	ContactForms []models.ContactForm `json:"contact_forms"`
}

// BackupJSON snapshots all leads plus the capture timestamp.
func BackupJSON(forms []models.ContactForm, now time.Time) ([]byte, error) {
	return json.MarshalIndent(Backup{
		Timestamp: now,
		Data:      BackupData{ContactForms: forms},
	}, "", "  ")
}

// Filename stamps a download with its record type and export time.
func Filename(prefix, extension string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format("2006-01-02-15-04"), extension)
}
