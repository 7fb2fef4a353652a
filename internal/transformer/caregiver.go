package transformer

import (
	"fmt"

	"go.uber.org/zap"

	"homecare-etl/internal/models"
)

// CaregiverTransformer validates and coerces raw caregiver profile rows.
type CaregiverTransformer struct {
	logger *zap.Logger
}

// NewCaregiverTransformer creates a caregiver transformer.
func NewCaregiverTransformer(logger *zap.Logger) *CaregiverTransformer {
	return &CaregiverTransformer{logger: logger}
}

// Transform coerces every row and returns the surviving records in input
// order plus the number of rows skipped. A malformed row is dropped and
// counted; it never aborts the batch.
func (t *CaregiverTransformer) Transform(rows []models.RawRow) ([]models.Caregiver, int) {
	kept := make([]models.Caregiver, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		rec, err := t.transformRow(row)
		if err != nil {
			skipped++
			t.logger.Debug("skipping caregiver row", zap.Error(err))
			continue
		}
		kept = append(kept, rec)
	}

	t.logger.Info("transformed caregiver rows",
		zap.Int("kept", len(kept)),
		zap.Int("total", len(rows)),
		zap.Int("skipped", skipped),
	)
	return kept, skipped
}

// transformRow maps one raw row to a typed Caregiver record.
//
// Both identity fields must be present: a row with an empty profile_id or
// caregiver_id would otherwise reach the store with an empty-string key and
// fail the whole batch there, so it is rejected here instead.
func (t *CaregiverTransformer) transformRow(row models.RawRow) (models.Caregiver, error) {
	if row["profile_id"] == "" {
		return models.Caregiver{}, fmt.Errorf("missing profile_id")
	}
	if row["caregiver_id"] == "" {
		return models.Caregiver{}, fmt.Errorf("missing caregiver_id")
	}

	birthday, err := NullableTime(row["birthday_date"])
	if err != nil {
		return models.Caregiver{}, fmt.Errorf("birthday_date: %w", err)
	}
	onboarding, err := NullableTime(row["onboarding_date"])
	if err != nil {
		return models.Caregiver{}, fmt.Errorf("onboarding_date: %w", err)
	}
	locationsID, err := NullableID(row["locations_id"])
	if err != nil {
		return models.Caregiver{}, fmt.Errorf("locations_id: %w", err)
	}

	return models.Caregiver{
		ProfileID:       row["profile_id"],
		CaregiverID:     row["caregiver_id"],
		FranchisorID:    row["franchisor_id"],
		AgencyID:        row["agency_id"],
		Subdomain:       NullableString(row["subdomain"]),
		ExternalID:      NullableString(row["external_id"]),
		FirstName:       NullableString(row["first_name"]),
		LastName:        NullableString(row["last_name"]),
		Email:           NullableString(row["email"]),
		PhoneNumber:     NullableString(row["phone_number"]),
		Gender:          NullableString(row["gender"]),
		Applicant:       NullableBool(row["applicant"]),
		BirthdayDate:    birthday,
		OnboardingDate:  onboarding,
		LocationName:    NullableString(row["location_name"]),
		LocationsID:     locationsID,
		ApplicantStatus: NullableString(row["applicant_status"]),
		Status:          row["status"],
	}, nil
}
