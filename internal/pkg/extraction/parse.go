package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

var (
	// ErrMalformedResponse means the reply was not the requested JSON shape.
	ErrMalformedResponse = errors.New("extraction: malformed model response")
	// ErrNoTopics means the reply was well formed but listed no topics.
	ErrNoTopics = errors.New("extraction: no topics extracted")
	// ErrTimeout means the model did not answer within the configured budget.
	ErrTimeout = errors.New("extraction: model call timed out")
	// ErrGeneration wraps transport and API failures of the model call.
	ErrGeneration = errors.New("extraction: model call failed")
)

// maxLectureHours bounds a single topic; larger values are treated as garbage.
const maxLectureHours = 1000

type rawTopic struct {
	Module       string   `json:"module"`
	Title        string   `json:"title"`
	LectureHours *float64 `json:"lectureHours"`
	TargetDate   string   `json:"targetDate"`
}

type rawReply struct {
	Topics *[]rawTopic `json:"topics"`
}

// StripFences removes a surrounding markdown code fence (```json ... ```)
// and any prose around the outermost JSON object.
func StripFences(reply string) string {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
	}
	if !strings.HasPrefix(s, "{") {
		start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}')
		if start >= 0 && end > start {
			s = s[start : end+1]
		}
	}
	return s
}

// ParseResponse decodes a model reply into topics in reply order. Topic ids and
// completion flags are left for the caller to assign.
func ParseResponse(reply string) ([]models.Topic, error) {
	var parsed rawReply
	if err := json.Unmarshal([]byte(StripFences(reply)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if parsed.Topics == nil {
		return nil, fmt.Errorf("%w: missing topics array", ErrMalformedResponse)
	}
	if len(*parsed.Topics) == 0 {
		return nil, ErrNoTopics
	}

	topics := make([]models.Topic, 0, len(*parsed.Topics))
	for i, raw := range *parsed.Topics {
		title := strings.TrimSpace(raw.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: topic %d has no title", ErrMalformedResponse, i)
		}
		hours, err := lectureHours(raw.LectureHours)
		if err != nil {
			return nil, fmt.Errorf("%w: topic %q: %v", ErrMalformedResponse, title, err)
		}
		target, err := models.ParseDate(raw.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("%w: topic %q: %v", ErrMalformedResponse, title, err)
		}
		topics = append(topics, models.Topic{
			Module:       strings.TrimSpace(raw.Module),
			Title:        title,
			LectureHours: hours,
			TargetDate:   target,
			Position:     i,
		})
	}
	return topics, nil
}

// lectureHours accepts only whole positive hour counts.
func lectureHours(v *float64) (int, error) {
	if v == nil {
		return 0, errors.New("missing lectureHours")
	}
	h := *v
	if h <= 0 || h > maxLectureHours {
		return 0, fmt.Errorf("lectureHours %v out of range", h)
	}
	if h != math.Trunc(h) {
		return 0, fmt.Errorf("lectureHours %v is not a whole number", h)
	}
	return int(h), nil
}
