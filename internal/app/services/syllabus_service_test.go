package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/extraction"
)

func validUpload() UploadInput {
	return UploadInput{
		CourseName:     "Data Structures",
		CourseCode:     "CS201",
		StartDate:      "2024-01-15",
		WeeklySchedule: `{"monday":2,"wednesday":1}`,
		Document: extraction.Document{
			Name:     "cs201.pdf",
			MimeType: "application/pdf",
			Data:     []byte("%PDF-1.4 syllabus"),
		},
	}
}

func extracted() []models.Topic {
	return []models.Topic{
		topic("t1", "Arrays", models.NewDate(2024, 1, 15), false),
		topic("t2", "Linked lists", models.NewDate(2024, 1, 17), false),
	}
}

func TestUploadPersistsCourseAndSyllabus(t *testing.T) {
	db := newMemDB()
	owner := db.addUser("Owner", "owner@college.edu")
	ext := &fakeExtractor{topics: extracted()}
	docs := newFakeDocs()
	svc := NewSyllabusService(memCourses{db}, memSyllabi{db}, ext, docs, db.authz(), nopLogger())

	resp, err := svc.Upload(context.Background(), owner.ID, validUpload())
	require.NoError(t, err)

	assert.Equal(t, "Data Structures", resp.CourseName)
	assert.Equal(t, owner.ID, resp.FacultyID)
	assert.Equal(t, models.WeeklySchedule{Monday: 2, Wednesday: 1}, resp.WeeklySchedule)
	require.NotNil(t, resp.Syllabus)
	assert.Len(t, resp.Syllabus.Topics, 2)
	assert.Equal(t, resp.ID, resp.Syllabus.CourseID)

	require.Len(t, ext.got, 1)
	assert.Equal(t, models.NewDate(2024, 1, 15), ext.got[0].StartDate)
	assert.Equal(t, 2, ext.got[0].Schedule.Monday)
	assert.Equal(t, "Data Structures", ext.got[0].CourseName)
	assert.Equal(t, "CS201", ext.got[0].CourseCode)

	stored := db.syllabi[resp.Syllabus.ID]
	require.NotNil(t, stored)
	assert.Contains(t, docs.saved, stored.SourceDocument)
}

func TestUploadValidation(t *testing.T) {
	cases := map[string]struct {
		mutate func(*UploadInput)
		field  string
	}{
		"blank name":       {func(in *UploadInput) { in.CourseName = " " }, "courseName"},
		"blank code":       {func(in *UploadInput) { in.CourseCode = "" }, "courseCode"},
		"bad date":         {func(in *UploadInput) { in.StartDate = "15/01/2024" }, "startDate"},
		"unknown weekday":  {func(in *UploadInput) { in.WeeklySchedule = `{"saturday":2}` }, "weeklySchedule"},
		"hours over limit": {func(in *UploadInput) { in.WeeklySchedule = `{"monday":25}` }, "weeklySchedule"},
		"missing schedule": {func(in *UploadInput) { in.WeeklySchedule = "" }, "weeklySchedule"},
		"all-zero week":    {func(in *UploadInput) { in.WeeklySchedule = `{"monday":0,"friday":0}` }, "weeklySchedule"},
		"no file":          {func(in *UploadInput) { in.Document.Data = nil }, "syllabusFile"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := newMemDB()
			ext := &fakeExtractor{topics: extracted()}
			svc := NewSyllabusService(memCourses{db}, memSyllabi{db}, ext, nil, db.authz(), nopLogger())

			in := validUpload()
			tc.mutate(&in)
			_, err := svc.Upload(context.Background(), 1, in)

			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			ce, ok := apperrors.AsCustom(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, ce.Field)
			assert.Empty(t, ext.got, "extraction must not run on invalid input")
			assert.Empty(t, db.courses)
		})
	}
}

func TestUploadExtractionFailurePersistsNothing(t *testing.T) {
	for _, cause := range []error{extraction.ErrTimeout, extraction.ErrNoTopics, extraction.ErrMalformedResponse, extraction.ErrGeneration} {
		db := newMemDB()
		docs := newFakeDocs()
		svc := NewSyllabusService(memCourses{db}, memSyllabi{db}, &fakeExtractor{err: cause}, docs, db.authz(), nopLogger())

		_, err := svc.Upload(context.Background(), 1, validUpload())
		assert.ErrorIs(t, err, apperrors.ErrExternalService)
		assert.ErrorIs(t, err, cause)
		assert.Empty(t, db.courses)
		assert.Empty(t, docs.saved)
	}
}

func TestUploadRemovesDocumentWhenSaveFails(t *testing.T) {
	db := newMemDB()
	db.createErr = errors.New("connection reset")
	docs := newFakeDocs()
	svc := NewSyllabusService(memCourses{db}, memSyllabi{db}, &fakeExtractor{topics: extracted()}, docs, db.authz(), nopLogger())

	_, err := svc.Upload(context.Background(), 1, validUpload())
	require.Error(t, err)
	assert.Empty(t, docs.saved)
	assert.Len(t, docs.deleted, 1)
}

func TestUploadContinuesWhenArchiveFails(t *testing.T) {
	db := newMemDB()
	docs := newFakeDocs()
	docs.saveErr = errors.New("bucket unavailable")
	svc := NewSyllabusService(memCourses{db}, memSyllabi{db}, &fakeExtractor{topics: extracted()}, docs, db.authz(), nopLogger())

	resp, err := svc.Upload(context.Background(), 1, validUpload())
	require.NoError(t, err)
	assert.Empty(t, db.syllabi[resp.Syllabus.ID].SourceDocument)
}

func TestUpdateTopicStatus(t *testing.T) {
	db := newMemDB()
	owner := db.addUser("Owner", "owner@college.edu")
	stranger := db.addUser("Stranger", "stranger@college.edu")
	_, s := db.addCourse(owner.ID, "CS201", extracted()...)
	svc := NewSyllabusService(memCourses{db}, memSyllabi{db}, nil, nil, db.authz(), nopLogger())
	ctx := context.Background()

	resp, err := svc.UpdateTopicStatus(ctx, owner.ID, s.ID, "t2", true)
	require.NoError(t, err)
	assert.False(t, resp.Topics[0].IsCompleted, "sibling topic untouched")
	assert.True(t, resp.Topics[1].IsCompleted)

	// idempotent
	resp, err = svc.UpdateTopicStatus(ctx, owner.ID, s.ID, "t2", true)
	require.NoError(t, err)
	assert.True(t, resp.Topics[1].IsCompleted)

	resp, err = svc.UpdateTopicStatus(ctx, owner.ID, s.ID, "t2", false)
	require.NoError(t, err)
	assert.False(t, resp.Topics[1].IsCompleted)

	_, err = svc.UpdateTopicStatus(ctx, stranger.ID, s.ID, "t1", true)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.False(t, db.syllabi[s.ID].Topics[0].IsCompleted)

	_, err = svc.UpdateTopicStatus(ctx, owner.ID, s.ID, "missing", true)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = svc.UpdateTopicStatus(ctx, owner.ID, 9999, "t1", true)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
