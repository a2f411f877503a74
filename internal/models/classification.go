package models

import "strings"

// GroundingSource is a web citation the AI service used to ground its
// assessment (government SOPs, budget circulars and similar).
type GroundingSource struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// Classification is the structured routing decision returned by the AI
// classification service. It is attached to a complaint at creation time and
// never mutated afterwards; the lifecycle engine treats it as opaque data.
type Classification struct {
	PrimaryDepartment     string            `json:"primaryDepartment"`
	SecondaryDepartments  []string          `json:"secondaryDepartments"`
	IssueType             string            `json:"issueType"`
	Severity              Severity          `json:"severity"`
	FundingRequired       bool              `json:"fundingRequired"`
	EstimatedCost         string            `json:"estimatedCost"`
	PermissionsNeeded     []string          `json:"permissionsNeeded"`
	InterdeptCoordination bool              `json:"interdeptCoordination"`
	EstimatedTimeline     string            `json:"estimatedTimeline"`
	Reasoning             string            `json:"reasoning"`
	GroundingSources      []GroundingSource `json:"groundingSources,omitempty"`

	// Fallback marks a record substituted locally because the AI call failed.
	// Downstream consumers must be able to tell it apart from a genuine result.
	Fallback bool `json:"fallback,omitempty"`
}

// EncodedMedia is an opaque, self-describing base64 payload (photo or audio)
// suitable for embedding in the persisted JSON document.
type EncodedMedia struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Base64 returns the raw base64 content, stripping a "data:...;base64," data
// URL prefix if the client sent one.
func (m EncodedMedia) Base64() string {
	if i := strings.Index(m.Data, ","); i >= 0 && strings.HasPrefix(m.Data, "data:") {
		return m.Data[i+1:]
	}
	return m.Data
}

// IsZero reports whether no media was provided.
func (m EncodedMedia) IsZero() bool {
	return m.Data == ""
}
