// Package classify provides the AI classification capability: turning citizen
// evidence into a structured routing decision, plus audio transcription. The
// network-calling Gemini adapter implements Classifier in production; tests
// use deterministic stubs.
package classify

import (
	"context"

	"govlens/backend/internal/models"
)

// Request carries the evidence sent for classification. Every field is
// optional, but intake guarantees at least one is set.
type Request struct {
	Photo       models.EncodedMedia
	Description string
	Transcript  string
}

// Classifier is the capability boundary to the AI service.
type Classifier interface {
	// Classify returns a structured routing decision for the evidence.
	Classify(ctx context.Context, req Request) (models.Classification, error)
	// Transcribe converts an audio payload to text.
	Transcribe(ctx context.Context, audio models.EncodedMedia) (string, error)
}

// Fallback returns the documented default classification substituted when the
// AI service fails, so a citizen is never blocked from submitting. The
// Fallback flag distinguishes it from a genuine AI-derived result.
func Fallback() models.Classification {
	return models.Classification{
		PrimaryDepartment:     "Municipal Administration",
		SecondaryDepartments:  []string{"Roads & Buildings"},
		IssueType:             "Road Infrastructure Damage",
		Severity:              models.SeverityHigh,
		FundingRequired:       true,
		EstimatedCost:         "₹2,50,000",
		PermissionsNeeded:     []string{"District Collector Approval"},
		InterdeptCoordination: true,
		EstimatedTimeline:     "14 days",
		Reasoning:             "Image shows significant structural damage to the primary access road. Immediate intervention required.",
		Fallback:              true,
	}
}
