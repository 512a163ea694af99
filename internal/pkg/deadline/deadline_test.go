package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

func topicDue(d models.Date) models.Topic {
	return models.Topic{TopicID: d.String(), TargetDate: d}
}

func TestClassify(t *testing.T) {
	today := models.NewDate(2024, 3, 10)

	cases := []struct {
		name   string
		topic  models.Topic
		expect Status
	}{
		{"yesterday", topicDue(today.AddDays(-1)), StatusOverdue},
		{"long ago", topicDue(today.AddDays(-40)), StatusOverdue},
		{"today", topicDue(today), StatusUpcoming},
		{"window edge", topicDue(today.AddDays(3)), StatusUpcoming},
		{"past window", topicDue(today.AddDays(4)), StatusNone},
		{"completed overdue", models.Topic{TargetDate: today.AddDays(-2), IsCompleted: true}, StatusNone},
		{"completed upcoming", models.Topic{TargetDate: today, IsCompleted: true}, StatusNone},
		{"no date", models.Topic{}, StatusNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Classify(tc.topic, today, DefaultWindowDays))
		})
	}
}

func TestClassifyZeroWindow(t *testing.T) {
	today := models.NewDate(2024, 3, 10)
	assert.Equal(t, StatusUpcoming, Classify(topicDue(today), today, 0))
	assert.Equal(t, StatusNone, Classify(topicDue(today.AddDays(1)), today, 0))
}

func TestTodayInZone(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 3, 9, 19, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-10", Today(now, kolkata).String())
	assert.Equal(t, "2024-03-09", Today(now, nil).String())
}

func TestPartition(t *testing.T) {
	today := models.NewDate(2024, 3, 10)
	topics := []models.Topic{
		topicDue(today.AddDays(-3)),
		topicDue(today.AddDays(1)),
		topicDue(today.AddDays(10)),
		topicDue(today.AddDays(-1)),
		{TopicID: "done", TargetDate: today.AddDays(-1), IsCompleted: true},
	}
	overdue, upcoming := Partition(topics, today, DefaultWindowDays)
	assert.Len(t, overdue, 2)
	assert.Equal(t, today.AddDays(-3).String(), overdue[0].TopicID)
	assert.Len(t, upcoming, 1)
	assert.Equal(t, "overdue", StatusOverdue.String())
}
