package models

import "time"

// Carelog is one care visit / shift record after coercion.
//
// StartDatetime and EndDatetime are always valid timestamps: rows where
// either is missing or unparsable never survive the transform stage.
// Absent clock-in/clock-out actuals signal a missed or incomplete visit.
type Carelog struct {
	CarelogID    string
	CaregiverID  string
	FranchisorID string
	AgencyID     string

	StartDatetime time.Time
	EndDatetime   time.Time

	ClockInActualDatetime  *time.Time
	ClockOutActualDatetime *time.Time

	ClockInMethod  *int
	ClockOutMethod *int
	Status         *int

	// Split marks visits that were split out of a parent record; ParentID
	// links back to the origin record.
	Split    *bool
	ParentID *string

	Documentation           *string
	GeneralCommentCharCount *int
}
