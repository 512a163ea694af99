// Package validation registers the custom binding rules and parses structured form values.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

// TagISODate validates a YYYY-MM-DD calendar date.
const TagISODate = "isodate"

// Register adds the custom rules to v and makes field errors report
// json/form names instead of Go field names.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)
	if err := v.RegisterValidation(TagISODate, isISODate); err != nil {
		return fmt.Errorf("registering %s rule: %w", TagISODate, err)
	}
	return nil
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

var (
	// ErrScheduleMissing is returned for an empty weeklySchedule value.
	ErrScheduleMissing = errors.New("weeklySchedule is required")
	// ErrNoTeachingDays is returned when every weekday has 0 hours.
	ErrNoTeachingDays = errors.New("weeklySchedule must have at least one teaching day")
)

// ParseWeeklySchedule decodes the weeklySchedule form value. Keys are the five
// weekdays, values are whole hours in 0..24 and missing days default to 0. At
// least one day must have hours.
func ParseWeeklySchedule(raw string) (models.WeeklySchedule, error) {
	var schedule models.WeeklySchedule
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return schedule, ErrScheduleMissing
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&schedule); err != nil {
		return models.WeeklySchedule{}, fmt.Errorf("weeklySchedule must be a JSON object of weekday hours: %w", err)
	}
	if dec.More() {
		return models.WeeklySchedule{}, fmt.Errorf("weeklySchedule has trailing data")
	}
	if err := schedule.Validate(); err != nil {
		return models.WeeklySchedule{}, fmt.Errorf("weeklySchedule: %w", err)
	}
	if schedule.TotalHours() == 0 {
		return models.WeeklySchedule{}, ErrNoTeachingDays
	}
	return schedule, nil
}
