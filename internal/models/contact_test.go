package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCalculateStatistics(t *testing.T) {
	forms := []ContactForm{
		{FullName: "א", PackageChoice: PackageBasic},
		{FullName: "ב", PackageChoice: PackagePremium, Status: strPtr(LeadStatusCompleted)},
		{FullName: "ג", PackageChoice: PackageBasic, Status: strPtr(LeadStatusPending)},
		{FullName: "ד", PackageChoice: PackageBasic, Status: strPtr(LeadStatusCancelled)},
		{FullName: "ה", PackageChoice: PackagePremium},
	}

	stats := CalculateStatistics(forms)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 3, stats.BasicPackages)
	assert.Equal(t, 2, stats.PremiumPackages)

	// New leads are the remainder, never a negative number.
	newLeads := stats.Total - stats.Completed - stats.Pending - stats.Cancelled
	assert.Equal(t, 2, newLeads)
	assert.Equal(t, stats.Total, stats.BasicPackages+stats.PremiumPackages)
}

func TestCalculateStatisticsEmpty(t *testing.T) {
	assert.Equal(t, Statistics{}, CalculateStatistics(nil))
}

func TestIsValidLeadStatus(t *testing.T) {
	assert.True(t, IsValidLeadStatus(nil))
	assert.True(t, IsValidLeadStatus(strPtr(LeadStatusPending)))
	assert.True(t, IsValidLeadStatus(strPtr(LeadStatusCompleted)))
	assert.True(t, IsValidLeadStatus(strPtr(LeadStatusCancelled)))
	assert.False(t, IsValidLeadStatus(strPtr("done")))
	assert.False(t, IsValidLeadStatus(strPtr("")))
}

func TestFilterLeads(t *testing.T) {
	forms := []ContactForm{
		{FullName: "דן כהן", Email: "dan@example.com", Phone: "0501234567"},
		{FullName: "Noa Levi", Email: "noa@test.co.il", Phone: "0529876543"},
	}

	assert.Len(t, FilterLeads(forms, ""), 2)
	assert.Len(t, FilterLeads(forms, "דן"), 1)
	assert.Len(t, FilterLeads(forms, "NOA"), 1)
	assert.Len(t, FilterLeads(forms, "0501"), 1)
	assert.Len(t, FilterLeads(forms, "nobody"), 0)
}
