// Package analysis provides display-side aggregation over the complaint
// collection for the officer dashboard: severity ranking, rupee cost parsing
// and summary statistics. Nothing here influences routing or transitions.
package analysis

import (
	"strconv"
	"strings"

	"govlens/backend/internal/config"
	"govlens/backend/internal/models"
)

// GetWeight returns the sorting weight for a given severity.
// It returns 0 if the severity is not recognized.
func GetWeight(severity models.Severity) int {
	return config.SeverityWeights[string(severity)]
}

// ParseCost converts an Indian-format rupee estimate such as "₹2,50,000" to
// its numeric value. Estimates without a rupee sign are treated as 0, the way
// the dashboard has always charted them.
func ParseCost(estimate string) float64 {
	if !strings.Contains(estimate, "₹") {
		return 0
	}
	cleaned := strings.NewReplacer("₹", "", ",", "", " ", "").Replace(estimate)
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// Summary is the officer dashboard aggregate.
type Summary struct {
	Total              int                     `json:"total"`
	ByDepartment       map[string]int          `json:"by_department"`
	BySeverity         map[models.Severity]int `json:"by_severity"`
	ByStatus           map[models.Status]int   `json:"by_status"`
	Resolved           int                     `json:"resolved"`
	ResolutionRate     float64                 `json:"resolution_rate"`
	TotalEstimatedCost float64                 `json:"total_estimated_cost"`
}

// Summarize computes dashboard statistics over a snapshot of the collection.
func Summarize(complaints []models.Complaint) Summary {
	s := Summary{
		Total:        len(complaints),
		ByDepartment: make(map[string]int),
		BySeverity:   make(map[models.Severity]int),
		ByStatus:     make(map[models.Status]int),
	}

	for _, c := range complaints {
		s.ByDepartment[c.AIAnalysis.PrimaryDepartment]++
		s.BySeverity[c.AIAnalysis.Severity]++
		s.ByStatus[c.Status]++
		s.TotalEstimatedCost += ParseCost(c.AIAnalysis.EstimatedCost)
		if c.Status == models.StatusResolved {
			s.Resolved++
		}
	}

	if s.Total > 0 {
		s.ResolutionRate = float64(s.Resolved) / float64(s.Total)
	}
	return s
}
