package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeeklySchedule(t *testing.T) {
	s, err := ParseWeeklySchedule(`{"monday":2,"wednesday":1}`)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Monday)
	assert.Equal(t, 0, s.Tuesday)
	assert.Equal(t, 1, s.Wednesday)

	_, err = ParseWeeklySchedule("")
	assert.ErrorIs(t, err, ErrScheduleMissing)
	_, err = ParseWeeklySchedule("   ")
	assert.ErrorIs(t, err, ErrScheduleMissing)

	_, err = ParseWeeklySchedule(`{}`)
	assert.ErrorIs(t, err, ErrNoTeachingDays)
	_, err = ParseWeeklySchedule(`{"monday":0,"tuesday":0,"wednesday":0,"thursday":0,"friday":0}`)
	assert.ErrorIs(t, err, ErrNoTeachingDays)

	for _, bad := range []string{
		`{"saturday":2}`,
		`{"monday":-1}`,
		`{"monday":30}`,
		`{"monday":1.5}`,
		`{"monday":"two"}`,
		`not json`,
		`{"monday":1} {}`,
	} {
		_, err := ParseWeeklySchedule(bad)
		assert.Error(t, err, bad)
	}
}

func TestISODateRule(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	type form struct {
		StartDate string `form:"startDate" validate:"isodate"`
	}
	assert.NoError(t, v.Struct(form{StartDate: "2024-01-15"}))

	err := v.Struct(form{StartDate: "15-01-2024"})
	require.Error(t, err)
	verrs := err.(validator.ValidationErrors)
	assert.Equal(t, "startDate", verrs[0].Field())
}
