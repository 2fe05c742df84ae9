package analytics

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"launchsite-backend/internal/models"
)

// SourceDirect is the canonical label for visits with no referrer,
// kept in Hebrew as the dashboard displays it.
const SourceDirect = "ישיר"

// WindowDays bounds analytics queries to a trailing window ending now.
const WindowDays = 30

// sourceAliases is checked in order; the first substring match wins.
var sourceAliases = []struct {
	match string
	name  string
}{
	{"google", "Google"},
	{"facebook.com", "Facebook"},
	{"instagram.com", "Instagram"},
	{"linkedin.com", "LinkedIn"},
	{"twitter.com", "Twitter"},
	{"bing", "Bing"},
	{"t.co", "Twitter"},
	{"fb.com", "Facebook"},
	{"direct", SourceDirect},
}

type DailyVisits struct {
	Date   string `json:"date"`
	Visits int    `json:"visits"`
}

type SourceStats struct {
	Source     string  `json:"source"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// NormalizeSource maps a raw referrer-derived string to a canonical
// display name. Unmatched strings that look like URLs are reduced to a
// bare hostname; anything else passes through unchanged, which makes
// the function idempotent on already-canonical names.
func NormalizeSource(source string) string {
	if source == "" {
		return SourceDirect
	}

	lower := strings.ToLower(source)
	for _, alias := range sourceAliases {
		if strings.Contains(lower, alias.match) {
			return alias.name
		}
	}

	if strings.Contains(source, ".") {
		raw := source
		if !strings.HasPrefix(raw, "http") {
			raw = "http://" + raw
		}
		if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
			return strings.TrimPrefix(u.Hostname(), "www.")
		}
	}

	return source
}

// DeriveSource infers a traffic source from the browser referrer at
// tracking time. It is coarser than NormalizeSource on purpose: the raw
// hostname is kept for anything that is not a known network so the
// aggregation step can still refine it.
func DeriveSource(referrer string) string {
	if referrer == "" {
		return "Direct"
	}

	u, err := url.Parse(referrer)
	if err != nil || u.Hostname() == "" {
		return referrer
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "google"):
		return "Google"
	case strings.Contains(host, "facebook"):
		return "Facebook"
	case strings.Contains(host, "instagram"):
		return "Instagram"
	}
	return u.Hostname()
}

// DailyBuckets groups visits by local calendar date and emits the
// series ascending. Days without visits are absent, not zero.
func DailyBuckets(visits []models.PageVisit) []DailyVisits {
	counts := make(map[string]int)
	for _, v := range visits {
		counts[v.VisitTime.Local().Format("2006-01-02")]++
	}

	daily := make([]DailyVisits, 0, len(counts))
	for date, n := range counts {
		daily = append(daily, DailyVisits{Date: date, Visits: n})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date < daily[j].Date
	})
	return daily
}

// SourceBuckets counts visits per normalized source, sorted descending
// by count, with each entry's share of the window total. All
// percentages are zero when the window is empty.
func SourceBuckets(visits []models.PageVisit) []SourceStats {
	counts := make(map[string]int)
	for _, v := range visits {
		source := ""
		if v.Source != nil {
			source = *v.Source
		}
		counts[NormalizeSource(source)]++
	}

	stats := make([]SourceStats, 0, len(counts))
	total := 0
	for source, n := range counts {
		stats = append(stats, SourceStats{Source: source, Count: n})
		total += n
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Source < stats[j].Source
	})

	if total > 0 {
		for i := range stats {
			stats[i].Percentage = float64(stats[i].Count) / float64(total) * 100
		}
	}
	return stats
}

// WindowStart returns the inclusive lower bound of the trailing
// analytics window ending at now.
func WindowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -WindowDays)
}
