package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

type stubGenerator struct {
	reply  string
	err    error
	delay  time.Duration
	prompt string
	doc    Document
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, doc Document) (string, error) {
	s.prompt, s.doc = prompt, doc
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.reply, s.err
}

func testRequest() Request {
	return Request{
		CourseName: "Data Structures",
		CourseCode: "CS201",
		StartDate:  models.NewDate(2024, 1, 15),
		Schedule:   models.WeeklySchedule{Monday: 2, Wednesday: 1},
		Document:   Document{Name: "ds.pdf", MimeType: "application/pdf", Data: []byte("%PDF-1.4")},
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(testRequest())

	assert.Equal(t, 1, strings.Count(p, "2024-01-15"))
	assert.Equal(t, 1, strings.Count(p, "Monday: 2 hours"))
	assert.Equal(t, 1, strings.Count(p, "Tuesday: 0 hours"))
	assert.Equal(t, 1, strings.Count(p, "Wednesday: 1 hour,"))
	assert.Equal(t, 1, strings.Count(p, "Friday: 0 hours"))
	assert.Contains(t, p, `{"topics":[{"module":`)
	assert.Less(t, strings.Index(p, "Monday"), strings.Index(p, "Friday"))
	assert.Contains(t, p, "syllabus of the course Data Structures (CS201).")
}

func TestBuildPromptCourseFallbacks(t *testing.T) {
	req := testRequest()
	req.CourseName = ""
	assert.Contains(t, BuildPrompt(req), "syllabus of the course CS201.")

	req.CourseCode = "  "
	p := BuildPrompt(req)
	assert.Contains(t, p, "syllabus of a course.")
	assert.Equal(t, 1, strings.Count(p, "2024-01-15"))
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, StripFences("Here you go: {\"a\":1} hope it helps"))
	assert.Equal(t, `{"a":1}`, StripFences("  {\"a\":1}  "))
}

func TestParseResponse(t *testing.T) {
	reply := "```json\n" + `{"topics":[
		{"module":"M1","title":"Arrays","lectureHours":2,"targetDate":"2024-01-15"},
		{"module":"M1","title":"Lists","lectureHours":3.0,"targetDate":"2024-01-17"}
	]}` + "\n```"

	topics, err := ParseResponse(reply)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "Arrays", topics[0].Title)
	assert.Equal(t, 3, topics[1].LectureHours)
	assert.Equal(t, "2024-01-17", topics[1].TargetDate.String())
	assert.Equal(t, 1, topics[1].Position)
}

func TestParseResponseErrors(t *testing.T) {
	_, err := ParseResponse(`{"topics":[]}`)
	assert.ErrorIs(t, err, ErrNoTopics)

	malformed := []string{
		"I could not read the document.",
		`{"items":[]}`,
		`{"topics":[{"module":"M","title":"A","targetDate":"2024-01-15"}]}`,
		`{"topics":[{"module":"M","title":"A","lectureHours":0,"targetDate":"2024-01-15"}]}`,
		`{"topics":[{"module":"M","title":"","lectureHours":1,"targetDate":"2024-01-15"}]}`,
		`{"topics":[{"module":"M","title":"A","lectureHours":1,"targetDate":"next week"}]}`,
		`{"topics":[{"module":"M","title":"A","lectureHours":"two","targetDate":"2024-01-15"}]}`,
		`{"topics":[{"module":"M","title":"A","lectureHours":1.5,"targetDate":"2024-01-15"}]}`,
		`{"topics":[{"module":"M","title":"A","lectureHours":-2,"targetDate":"2024-01-15"}]}`,
		`{"topics":[{"module":"M","title":"A","lectureHours":1e9,"targetDate":"2024-01-15"}]}`,
	}
	for _, reply := range malformed {
		_, err := ParseResponse(reply)
		assert.ErrorIs(t, err, ErrMalformedResponse, reply)
		assert.False(t, errors.Is(err, ErrNoTopics))
	}
}

func TestExtractAssignsIdentity(t *testing.T) {
	gen := &stubGenerator{reply: `{"topics":[
		{"module":"M1","title":"Arrays","lectureHours":2,"targetDate":"2024-01-15"},
		{"module":"M1","title":"Lists","lectureHours":1,"targetDate":"2024-01-17"}
	]}`}
	ex := NewExtractor(gen, time.Second, zerolog.Nop())

	topics, err := ex.Extract(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.NotEmpty(t, topics[0].TopicID)
	assert.NotEqual(t, topics[0].TopicID, topics[1].TopicID)
	for _, topic := range topics {
		assert.Equal(t, topic.Title, topic.Description)
		assert.False(t, topic.IsCompleted)
	}
	assert.Equal(t, "application/pdf", gen.doc.MimeType)
	assert.Contains(t, gen.prompt, "2024-01-15")
}

func TestExtractTimeout(t *testing.T) {
	gen := &stubGenerator{reply: `{"topics":[]}`, delay: time.Second}
	ex := NewExtractor(gen, 20*time.Millisecond, zerolog.Nop())

	_, err := ex.Extract(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestExtractGeneratorFailure(t *testing.T) {
	ex := NewExtractor(&stubGenerator{err: errors.New("quota exceeded")}, time.Second, zerolog.Nop())
	_, err := ex.Extract(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrGeneration)

	ex = NewExtractor(Unconfigured{}, time.Second, zerolog.Nop())
	_, err = ex.Extract(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrGeneration)

	req := testRequest()
	req.Document.Data = nil
	_, err = ex.Extract(context.Background(), req)
	assert.ErrorIs(t, err, ErrGeneration)
}
