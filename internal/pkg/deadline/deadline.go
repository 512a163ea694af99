// Package deadline classifies topics against the current calendar day.
package deadline

import (
	"time"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

// DefaultWindowDays is how far ahead a topic counts as upcoming.
const DefaultWindowDays = 3

// Status is the reminder class of a topic.
type Status int

const (
	StatusNone Status = iota
	StatusOverdue
	StatusUpcoming
)

func (s Status) String() string {
	switch s {
	case StatusOverdue:
		return "overdue"
	case StatusUpcoming:
		return "upcoming"
	default:
		return "none"
	}
}

// Today returns the calendar day of now in loc.
func Today(now time.Time, loc *time.Location) models.Date {
	if loc == nil {
		loc = time.UTC
	}
	return models.DateOf(now.In(loc))
}

// Classify places a topic relative to today. Completed topics are never
// reminded; a target before today is overdue; a target within
// [today, today+windowDays] is upcoming.
func Classify(topic models.Topic, today models.Date, windowDays int) Status {
	if topic.IsCompleted || topic.TargetDate.IsZero() {
		return StatusNone
	}
	if topic.TargetDate.Before(today) {
		return StatusOverdue
	}
	if !topic.TargetDate.After(today.AddDays(windowDays)) {
		return StatusUpcoming
	}
	return StatusNone
}

// Partition splits topics into overdue and upcoming batches, keeping order.
func Partition(topics []models.Topic, today models.Date, windowDays int) (overdue, upcoming []models.Topic) {
	for _, t := range topics {
		switch Classify(t, today, windowDays) {
		case StatusOverdue:
			overdue = append(overdue, t)
		case StatusUpcoming:
			upcoming = append(upcoming, t)
		}
	}
	return overdue, upcoming
}
