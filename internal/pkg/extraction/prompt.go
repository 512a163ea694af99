// Package extraction turns an uploaded syllabus document into dated topics
// by asking a generative model for a structured reply.
package extraction

import (
	"fmt"
	"strings"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

// Document is the raw syllabus file sent to the model.
type Document struct {
	Name     string
	MimeType string
	Data     []byte
}

// Request is everything the model needs to plan a syllabus.
type Request struct {
	CourseName string
	CourseCode string
	StartDate  models.Date
	Schedule   models.WeeklySchedule
	Document   Document
}

const promptTemplate = `You are an academic scheduling assistant. The attached document is the syllabus of %s.

Read the syllabus and list every module together with the topics it contains, estimating the lecture hours each topic needs.
Then plan when each topic should be finished. Teaching starts on %s and follows this weekly cadence of lecture hours:
%s.
Walk forward from the start date, spend the available hours of each teaching day on the topics in syllabus order, and skip days with 0 hours.
Give every topic the targetDate of the day its last lecture hour falls on.

Reply with one JSON object and nothing else, in exactly this shape:
{"topics":[{"module":"<module name>","title":"<topic title>","lectureHours":<positive whole number>,"targetDate":"YYYY-MM-DD"}]}`

// BuildPrompt renders the instruction text. The start date and each weekday
// entry appear exactly once.
func BuildPrompt(req Request) string {
	return fmt.Sprintf(promptTemplate, describeCourse(req.CourseName, req.CourseCode),
		req.StartDate.String(), FormatSchedule(req.Schedule))
}

// describeCourse renders "Data Structures (CS201)", or whichever part is known.
func describeCourse(name, code string) string {
	name, code = strings.TrimSpace(name), strings.TrimSpace(code)
	switch {
	case name != "" && code != "":
		return fmt.Sprintf("the course %s (%s)", name, code)
	case name != "":
		return "the course " + name
	case code != "":
		return "the course " + code
	default:
		return "a course"
	}
}

// FormatSchedule renders the weekly cadence in Monday..Friday order,
// e.g. "Monday: 2 hours, Tuesday: 1 hour, Wednesday: 0 hours, ...".
func FormatSchedule(schedule models.WeeklySchedule) string {
	days := schedule.Days()
	parts := make([]string, 0, len(days))
	for _, d := range days {
		unit := "hours"
		if d.Hours == 1 {
			unit = "hour"
		}
		parts = append(parts, fmt.Sprintf("%s: %d %s", d.Day, d.Hours, unit))
	}
	return strings.Join(parts, ", ")
}
