package models

import "time"

// RawRow is one CSV row keyed by column name. Every value is the raw string
// from the file; a column missing from a ragged row is simply an absent key.
type RawRow map[string]string

// Caregiver is one care worker profile after coercion.
//
// ProfileID is the storage primary key; CaregiverID is the business identity
// that carelogs reference. Pointer fields are nullable in the store.
type Caregiver struct {
	ProfileID    string
	CaregiverID  string
	FranchisorID string
	AgencyID     string

	Subdomain       *string
	ExternalID      *string
	FirstName       *string
	LastName        *string
	Email           *string
	PhoneNumber     *string
	Gender          *string
	Applicant       *bool
	BirthdayDate    *time.Time
	OnboardingDate  *time.Time
	LocationName    *string
	LocationsID     *int
	ApplicantStatus *string

	// Status is carried through from the source unchanged.
	Status string
}
