package services

import (
	"math"
	"sort"
	"time"

	"github.com/LUXA-Digital-Solutions/lynkz/internal/models"
)

// AnalyticsService derives summary and time-series views from link and click
// snapshots. Nothing is stored; every report is recomputed from the inputs.
// Aggregation never fails: empty inputs produce zeroed, empty outputs.
type AnalyticsService struct {
	now func() time.Time
}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{now: time.Now}
}

type DatePoint struct {
	Date   string `json:"date"`
	Clicks int    `json:"clicks"`
}

type CountryStat struct {
	Country string `json:"country"`
	Clicks  int    `json:"clicks"`
}

type DeviceStat struct {
	DeviceType string `json:"deviceType"`
	Clicks     int    `json:"clicks"`
}

type ReferrerStat struct {
	Referrer string `json:"referrer"`
	Clicks   int    `json:"clicks"`
}

type SummaryStats struct {
	TotalLinks       int     `json:"totalLinks"`
	TotalClicks      int     `json:"totalClicks"`
	UniqueClicks     int     `json:"uniqueClicks"`
	ClickRate        float64 `json:"clickRate"`
	AvgClicksPerLink float64 `json:"avgClicksPerLink"`
}

// Report bundles everything the analytics view renders from one snapshot.
type Report struct {
	Stats            SummaryStats       `json:"stats"`
	TopLinks         []models.Link      `json:"topLinks"`
	RecentClicks     []models.LinkClick `json:"recentClicks"`
	ClicksByDate     []DatePoint        `json:"clicksByDate"`
	ClicksByCountry  []CountryStat      `json:"clicksByCountry"`
	ClicksByDevice   []DeviceStat       `json:"clicksByDevice"`
	ClicksByReferrer []ReferrerStat     `json:"clicksByReferrer"`
}

// ClicksByDate buckets clicks over the trailing days UTC calendar days
// ending today, oldest first. Days without clicks appear with count 0, so
// the result always holds exactly days entries.
func (s *AnalyticsService) ClicksByDate(clicks []models.LinkClick, days int) []DatePoint {
	result := make([]DatePoint, 0, days)
	today := s.now().UTC()

	for i := days - 1; i >= 0; i-- {
		dateStr := today.AddDate(0, 0, -i).Format("2006-01-02")

		count := 0
		for _, c := range clicks {
			if c.ClickedAt.UTC().Format("2006-01-02") == dateStr {
				count++
			}
		}
		result = append(result, DatePoint{Date: dateStr, Clicks: count})
	}
	return result
}

// ClicksByCountry groups clicks by country, "Unknown" when absent, sorted by
// descending count. Ties keep first-encountered order.
func (s *AnalyticsService) ClicksByCountry(clicks []models.LinkClick) []CountryStat {
	labels, counts := groupClicks(clicks, func(c models.LinkClick) string { return c.Country }, "Unknown")

	result := make([]CountryStat, 0, len(labels))
	for _, label := range labels {
		result = append(result, CountryStat{Country: label, Clicks: counts[label]})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Clicks > result[j].Clicks })
	return result
}

// ClicksByDevice groups clicks by device type, "Unknown" when absent.
func (s *AnalyticsService) ClicksByDevice(clicks []models.LinkClick) []DeviceStat {
	labels, counts := groupClicks(clicks, func(c models.LinkClick) string { return c.DeviceType }, "Unknown")

	result := make([]DeviceStat, 0, len(labels))
	for _, label := range labels {
		result = append(result, DeviceStat{DeviceType: label, Clicks: counts[label]})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Clicks > result[j].Clicks })
	return result
}

// ClicksByReferrer groups clicks by referrer, "Direct" when absent, sorted by
// descending count.
func (s *AnalyticsService) ClicksByReferrer(clicks []models.LinkClick) []ReferrerStat {
	labels, counts := groupClicks(clicks, func(c models.LinkClick) string { return c.Referrer }, "Direct")

	result := make([]ReferrerStat, 0, len(labels))
	for _, label := range labels {
		result = append(result, ReferrerStat{Referrer: label, Clicks: counts[label]})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Clicks > result[j].Clicks })
	return result
}

// groupClicks tallies clicks per label, keeping first-encountered label order
// so ties stay stable downstream.
func groupClicks(clicks []models.LinkClick, key func(models.LinkClick) string, fallback string) ([]string, map[string]int) {
	labels := make([]string, 0)
	counts := make(map[string]int)
	for _, c := range clicks {
		label := key(c)
		if label == "" {
			label = fallback
		}
		if _, seen := counts[label]; !seen {
			labels = append(labels, label)
		}
		counts[label]++
	}
	return labels, counts
}

// TopLinks returns the n links with the highest click counts.
func (s *AnalyticsService) TopLinks(links []models.Link, n int) []models.Link {
	sorted := make([]models.Link, len(links))
	copy(sorted, links)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ClickCount > sorted[j].ClickCount })

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Stats computes the headline numbers. With zero links the rate and average
// are 0, never NaN. UniqueClicks counts distinct ipAddress values over the
// whole click set in scope.
func (s *AnalyticsService) Stats(links []models.Link, clicks []models.LinkClick) SummaryStats {
	stats := SummaryStats{
		TotalLinks:  len(links),
		TotalClicks: len(clicks),
	}

	ips := make(map[string]struct{})
	for _, c := range clicks {
		ips[c.IPAddress] = struct{}{}
	}
	stats.UniqueClicks = len(ips)

	if stats.TotalLinks > 0 {
		stats.ClickRate = float64(stats.TotalClicks) / float64(stats.TotalLinks)
		stats.AvgClicksPerLink = math.Round(stats.ClickRate*10) / 10
	}
	return stats
}

// BuildReport assembles the full analytics view: headline stats, top 5
// links, 10 most recent clicks and the four groupings over the trailing
// 7 days.
func (s *AnalyticsService) BuildReport(links []models.Link, clicks []models.LinkClick) Report {
	recent := make([]models.LinkClick, len(clicks))
	copy(recent, clicks)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].ClickedAt.After(recent[j].ClickedAt) })
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return Report{
		Stats:            s.Stats(links, clicks),
		TopLinks:         s.TopLinks(links, 5),
		RecentClicks:     recent,
		ClicksByDate:     s.ClicksByDate(clicks, 7),
		ClicksByCountry:  s.ClicksByCountry(clicks),
		ClicksByDevice:   s.ClicksByDevice(clicks),
		ClicksByReferrer: s.ClicksByReferrer(clicks),
	}
}
