// Package stats derives dashboard metrics from the lead collection.
package stats

import (
	"time"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

// noResult is the popularQuizResult placeholder when no lead has a quiz
// result yet.
const noResult = "Nenhum"

// dateLayout formats calendar days for leadsPerDay.
const dateLayout = "2006-01-02"

// Compute derives DashboardStats from the given lead collection. Pure
// function: calling it twice over an unchanged collection yields identical
// results. now anchors "today" and the 7-day window; day boundaries follow
// now's location.
func Compute(leads []model.Lead, now time.Time) model.DashboardStats {
	stats := model.DashboardStats{
		TotalLeads:        len(leads),
		PopularQuizResult: noResult,
	}

	today := truncateDay(now)

	// Per-status counts, every status present in declaration order.
	byStatus := make(map[model.LeadStatus]int)
	for _, lead := range leads {
		byStatus[lead.Status]++
		if truncateDay(lead.CreatedAt.In(now.Location())).Equal(today) {
			stats.NewLeadsToday++
		}
	}
	for _, status := range model.AllStatuses() {
		stats.LeadsByStatus = append(stats.LeadsByStatus, model.StatusCount{
			Status: status,
			Count:  byStatus[status],
		})
	}

	// Last 7 calendar days including today, oldest first.
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		count := 0
		for _, lead := range leads {
			if truncateDay(lead.CreatedAt.In(now.Location())).Equal(day) {
				count++
			}
		}
		stats.LeadsPerDay = append(stats.LeadsPerDay, model.DayCount{
			Date:  day.Format(dateLayout),
			Count: count,
		})
	}

	// Most frequent quiz result. Counts are accumulated in full first, then
	// scanned in first-encounter order with strict greater-than, so on a tie
	// the result seen earliest in the collection wins.
	resultCounts := make(map[model.Category]int)
	var resultOrder []model.Category
	for _, lead := range leads {
		if lead.QuizResult == "" {
			continue
		}
		if _, seen := resultCounts[lead.QuizResult]; !seen {
			resultOrder = append(resultOrder, lead.QuizResult)
		}
		resultCounts[lead.QuizResult]++
	}
	maxCount := 0
	for _, category := range resultOrder {
		if resultCounts[category] > maxCount {
			maxCount = resultCounts[category]
			stats.PopularQuizResult = string(category)
		}
	}

	if stats.TotalLeads > 0 {
		converted := byStatus[model.StatusConverted]
		stats.ConversionRate = float64(converted) / float64(stats.TotalLeads) * 100
	}

	return stats
}

// truncateDay drops the time-of-day component in t's location.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
