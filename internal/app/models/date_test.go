package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", d.String())

	_, err = ParseDate("15/01/2024")
	assert.Error(t, err)

	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on the 14th is already the 15th in IST.
	instant := time.Date(2024, 1, 14, 20, 0, 0, 0, time.UTC).In(loc)
	assert.Equal(t, "2024-01-15", DateOf(instant).String())
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, 2, 28)
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.True(t, d.Equal(NewDate(2024, 2, 28)))
}

func TestDateJSON(t *testing.T) {
	topic := Topic{TopicID: "t1", Title: "Arrays", TargetDate: NewDate(2024, 3, 4)}
	b, err := json.Marshal(topic)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"targetDate":"2024-03-04"`)

	var decoded Topic
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, decoded.TargetDate.Equal(topic.TargetDate))

	var empty struct {
		D Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":null}`), &empty))
	assert.True(t, empty.D.IsZero())
	assert.Error(t, json.Unmarshal([]byte(`{"d":"tomorrow"}`), &empty))
}
