package complaint

import (
	"time"

	"govlens/backend/internal/models"
)

// DefaultSeed returns the two-complaint demo dataset used to bootstrap an
// empty storage location. Timestamps are anchored to the given time so the
// demo timeline always reads as recent history.
func DefaultSeed(now time.Time) []models.Complaint {
	return []models.Complaint{
		{
			ID:          "AP-2026-001",
			SubmittedAt: now.Add(-3 * 24 * time.Hour),
			Citizen:     models.Citizen{Name: "Ravi Kumar", Phone: "9876543210"},
			Issue: models.Issue{
				Photo:       "https://images.unsplash.com/photo-1544984243-ec57ea16fe25?q=80&w=800&auto=format&fit=crop",
				Description: "Main road near government hospital has a huge pothole causing accidents.",
				Location:    "Vijayawada, Ward 15",
			},
			AIAnalysis: models.Classification{
				PrimaryDepartment:     "Roads & Buildings",
				SecondaryDepartments:  []string{"Municipal Administration"},
				IssueType:             "Infrastructure - Road Damage",
				Severity:              models.SeverityHigh,
				FundingRequired:       true,
				EstimatedCost:         "₹2,50,000",
				PermissionsNeeded:     []string{"Municipal Commissioner Approval"},
				InterdeptCoordination: true,
				EstimatedTimeline:     "14 days",
				Reasoning:             "High traffic zone, poses immediate risk to ambulance route.",
			},
			Status: models.StatusUnderReview,
			Timeline: []models.TimelineEvent{
				{Stage: models.StatusSubmitted, Timestamp: now.Add(-3 * 24 * time.Hour)},
				{Stage: models.StatusAssigned, Timestamp: now.Add(-60 * time.Hour), Officer: "Suresh Babu (AE)", Action: "Site inspection scheduled"},
				{Stage: models.StatusUnderReview, Timestamp: now.Add(-2 * 24 * time.Hour), Officer: "M. Venkat (EE)", Action: "Budget request initiated"},
			},
		},
		{
			ID:          "AP-2026-002",
			SubmittedAt: now.Add(-24 * time.Hour),
			Citizen:     models.Citizen{Name: "Anita Rao", Phone: "9988776655"},
			Issue: models.Issue{
				Photo:       "https://images.unsplash.com/photo-1508514177221-188b1cf16e9d?q=80&w=800&auto=format&fit=crop",
				Description: "Street lights not working for last 3 nights in Reddy Colony.",
				Location:    "Visakhapatnam, Ward 22",
			},
			AIAnalysis: models.Classification{
				PrimaryDepartment:     "Energy",
				SecondaryDepartments:  []string{},
				IssueType:             "Electrical - Street Lighting",
				Severity:              models.SeverityMedium,
				FundingRequired:       false,
				EstimatedCost:         "₹15,000",
				PermissionsNeeded:     []string{"Section Officer Approval"},
				InterdeptCoordination: false,
				EstimatedTimeline:     "3 days",
				Reasoning:             "Multiple lights out in a residential area, security concern.",
			},
			Status: models.StatusAssigned,
			Timeline: []models.TimelineEvent{
				{Stage: models.StatusSubmitted, Timestamp: now.Add(-24 * time.Hour)},
				{Stage: models.StatusAssigned, Timestamp: now.Add(-19 * time.Hour), Officer: "K. Reddy (Lineman)", Action: "Work order created"},
			},
		},
	}
}
