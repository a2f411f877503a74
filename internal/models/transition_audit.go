package models

import "gorm.io/gorm"

// TransitionAudit is an append-only PostgreSQL record of a status transition.
// The embedded gorm.Model provides ID and CreatedAt, which serve as the audit
// row ID and timestamp. Rows are only ever inserted, never updated.
type TransitionAudit struct {
	gorm.Model

	// ComplaintID is the public complaint identifier (AP-<year>-<sequence>).
	ComplaintID string `gorm:"type:text;not null;index"`
	// Stage is the status the complaint was moved to.
	Stage string `gorm:"type:text;not null"`
	// Officer is the display name of the officer who performed the transition.
	Officer string `gorm:"type:text"`
	// Action is the free-text note attached to the transition.
	Action string `gorm:"type:text"`
}
