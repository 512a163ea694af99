// Package export renders a course's topic schedule as downloadable files.
package export

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

const productID = "-//Syllabus Tracker//Course Schedule//EN"

// Calendar renders one all-day event per topic on its target date.
func Calendar(course *models.Course, now time.Time) (string, error) {
	if course.Syllabus == nil {
		return "", fmt.Errorf("course %d has no syllabus", course.ID)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, topic := range course.Syllabus.Topics {
		if topic.TargetDate.IsZero() {
			continue
		}
		event := cal.AddEvent(topic.TopicID + "@syllabus-tracker")
		event.SetDtStampTime(now.UTC())
		event.SetSummary(eventSummary(course, topic))
		event.SetDescription(eventDescription(topic))
		event.SetAllDayStartAt(topic.TargetDate.Time())
		event.SetAllDayEndAt(topic.TargetDate.AddDays(1).Time())
	}

	return cal.Serialize(), nil
}

func eventSummary(course *models.Course, topic models.Topic) string {
	summary := fmt.Sprintf("%s: %s", course.Code, topic.Title)
	if topic.IsCompleted {
		summary = "[done] " + summary
	}
	return summary
}

func eventDescription(topic models.Topic) string {
	var b strings.Builder
	if topic.Module != "" {
		fmt.Fprintf(&b, "Module: %s\n", topic.Module)
	}
	fmt.Fprintf(&b, "Lecture hours: %d", topic.LectureHours)
	if topic.Description != "" && topic.Description != topic.Title {
		fmt.Fprintf(&b, "\n%s", topic.Description)
	}
	return b.String()
}
