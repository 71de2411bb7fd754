package validation

import "fintrack/internal/models"

// SettingsRecord is the normalized shape of validated user settings.
type SettingsRecord struct {
	FullName    string             `json:"full_name" validate:"max=100"`
	DefaultView models.RangePreset `json:"default_view" validate:"required,range_preset"`
}

// Settings validates an untyped settings input.
func Settings(input map[string]any) (*SettingsRecord, FieldErrors) {
	errs := FieldErrors{}
	record := &SettingsRecord{}

	fullName, _, badName := stringField(input, "full_name")
	if badName {
		errs.add("full_name", "must be a string")
	}
	record.FullName = fullName

	view, _, badView := stringField(input, "default_view")
	if badView {
		errs.add("default_view", "must be a string")
	}
	record.DefaultView = models.RangePreset(view)

	collect(record, errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return record, nil
}
