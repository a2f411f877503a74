package config

import "time"

const (
	// Storage
	// ComplaintsKey is the fixed Redis key holding the full serialized
	// complaint collection. The document layout mirrors models.Complaint
	// field-for-field, so a reload round-trips byte-for-byte.
	ComplaintsKey = "govlens_complaints"
	// SequenceKey backs the AP-<year>-<sequence> id counter.
	SequenceKey = "govlens_complaint_seq"
	// UpdatesChannel is the Redis Pub/Sub channel for status updates.
	UpdatesChannel = "govlens:updates"

	// IDs
	IDPrefix = "AP"

	// Auth
	TokenTTL    = 72 * time.Hour
	TokenIssuer = "govlens-service"

	// Intake
	AnonymousCitizenName  = "Anonymous"
	AnonymousCitizenPhone = "98XXXXXX45"
	DefaultLocation       = "Location not specified"
	// TranscriptFailureSentinel replaces the transcript when transcription
	// fails; submission still proceeds without it.
	TranscriptFailureSentinel = "Error during transcription."
)

// SeverityWeights rank severities for dashboard sorting. The lifecycle engine
// never consults these.
var SeverityWeights = map[string]int{
	"Low":      5,
	"Medium":   50,
	"High":     150,
	"Critical": 250,
}
