package transformer

import (
	"fmt"

	"go.uber.org/zap"

	"homecare-etl/internal/models"
)

// CarelogTransformer validates and coerces raw care-visit rows.
type CarelogTransformer struct {
	logger *zap.Logger
}

// NewCarelogTransformer creates a carelog transformer.
func NewCarelogTransformer(logger *zap.Logger) *CarelogTransformer {
	return &CarelogTransformer{logger: logger}
}

// Transform coerces every row and returns the surviving records in input
// order plus the number of rows skipped.
func (t *CarelogTransformer) Transform(rows []models.RawRow) ([]models.Carelog, int) {
	kept := make([]models.Carelog, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		rec, err := t.transformRow(row)
		if err != nil {
			skipped++
			t.logger.Debug("skipping carelog row", zap.Error(err))
			continue
		}
		kept = append(kept, rec)
	}

	t.logger.Info("transformed carelog rows",
		zap.Int("kept", len(kept)),
		zap.Int("total", len(rows)),
		zap.Int("skipped", skipped),
	)
	return kept, skipped
}

// transformRow maps one raw row to a typed Carelog record.
//
// A visit without both scheduled timestamps is not a usable record: the nil
// check after coercion covers absent values, and the coercion error covers
// present-but-unparsable ones.
func (t *CarelogTransformer) transformRow(row models.RawRow) (models.Carelog, error) {
	if row["carelog_id"] == "" {
		return models.Carelog{}, fmt.Errorf("missing carelog_id")
	}
	if row["caregiver_id"] == "" {
		return models.Carelog{}, fmt.Errorf("missing caregiver_id")
	}

	start, err := NullableTime(row["start_datetime"])
	if err != nil {
		return models.Carelog{}, fmt.Errorf("start_datetime: %w", err)
	}
	end, err := NullableTime(row["end_datetime"])
	if err != nil {
		return models.Carelog{}, fmt.Errorf("end_datetime: %w", err)
	}
	if start == nil || end == nil {
		return models.Carelog{}, fmt.Errorf("missing start_datetime or end_datetime")
	}

	clockIn, err := NullableTime(row["clock_in_actual_datetime"])
	if err != nil {
		return models.Carelog{}, fmt.Errorf("clock_in_actual_datetime: %w", err)
	}
	clockOut, err := NullableTime(row["clock_out_actual_datetime"])
	if err != nil {
		return models.Carelog{}, fmt.Errorf("clock_out_actual_datetime: %w", err)
	}
	clockInMethod, err := NullableInt(row["clock_in_method"])
	if err != nil {
		return models.Carelog{}, fmt.Errorf("clock_in_method: %w", err)
	}
	clockOutMethod, err := NullableInt(row["clock_out_method"])
	if err != nil {
		return models.Carelog{}, fmt.Errorf("clock_out_method: %w", err)
	}
	status, err := NullableInt(row["status"])
	if err != nil {
		return models.Carelog{}, fmt.Errorf("status: %w", err)
	}
	commentChars, err := NullableInt(row["general_comment_char_count"])
	if err != nil {
		return models.Carelog{}, fmt.Errorf("general_comment_char_count: %w", err)
	}

	return models.Carelog{
		CarelogID:               row["carelog_id"],
		CaregiverID:             row["caregiver_id"],
		FranchisorID:            row["franchisor_id"],
		AgencyID:                row["agency_id"],
		StartDatetime:           *start,
		EndDatetime:             *end,
		ClockInActualDatetime:   clockIn,
		ClockOutActualDatetime:  clockOut,
		ClockInMethod:           clockInMethod,
		ClockOutMethod:          clockOutMethod,
		Status:                  status,
		Split:                   NullableBool(row["split"]),
		ParentID:                NullableString(row["parent_id"]),
		Documentation:           NullableString(row["documentation"]),
		GeneralCommentCharCount: commentChars,
	}, nil
}
