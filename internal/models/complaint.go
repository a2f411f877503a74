package models

import "time"

// Status is a stage in the complaint lifecycle pipeline.
type Status string

const (
	StatusSubmitted   Status = "Submitted"
	StatusAssigned    Status = "Assigned"
	StatusUnderReview Status = "Under Review"
	StatusActionTaken Status = "Action Taken"
	StatusResolved    Status = "Resolved"
)

// Pipeline is the fixed, ordered complaint pipeline. Stages are displayed and
// reported in this order regardless of the order transitions actually happened.
var Pipeline = []Status{
	StatusSubmitted,
	StatusAssigned,
	StatusUnderReview,
	StatusActionTaken,
	StatusResolved,
}

// Severity is the AI-assessed severity of a complaint. It is opaque to the
// lifecycle logic and only used for display and dashboard sorting.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Citizen identifies who filed the complaint. Immutable after creation and may
// be anonymized ("Anonymous" + masked phone).
type Citizen struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Issue is the evidence bundle attached to a complaint at submission time.
// There is no edit operation; the bundle never changes after creation.
type Issue struct {
	Photo           string `json:"photo,omitempty"` // base64 data URL or plain URL
	Description     string `json:"description"`
	AudioTranscript string `json:"audioTranscript,omitempty"`
	Location        string `json:"location"`
}

// TimelineEvent is an immutable fact on a complaint's audit trail. Once
// appended it is never modified or removed.
type TimelineEvent struct {
	Stage     Status    `json:"stage"`
	Timestamp time.Time `json:"timestamp"`
	Officer   string    `json:"officer,omitempty"`
	Action    string    `json:"action,omitempty"`
}

// Complaint is the unit of work: a citizen grievance with its AI routing
// decision and its status timeline. The JSON tags define the persisted
// document layout, so renaming a field is a storage format change.
type Complaint struct {
	ID          string         `json:"id"` // format AP-<year>-<sequence>
	SubmittedAt time.Time      `json:"timestamp"`
	Citizen     Citizen        `json:"citizen"`
	Issue       Issue          `json:"issue"`
	AIAnalysis  Classification `json:"aiAnalysis"`

	// Status always equals the stage of the last timeline event. Both are
	// updated together by the lifecycle engine, never independently.
	Status   Status          `json:"status"`
	Timeline []TimelineEvent `json:"timeline"`
}

// LastEvent returns the most recently appended timeline event.
// A well-formed complaint always has at least the Submitted event.
func (c *Complaint) LastEvent() TimelineEvent {
	if len(c.Timeline) == 0 {
		return TimelineEvent{}
	}
	return c.Timeline[len(c.Timeline)-1]
}
