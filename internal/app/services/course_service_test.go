package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
)

func TestCourseListNewestFirstWithProgress(t *testing.T) {
	db := newMemDB()
	owner := db.addUser("Owner", "owner@college.edu")
	other := db.addUser("Other", "other@college.edu")
	day := models.NewDate(2024, 1, 15)

	db.addCourse(owner.ID, "CS101", topic("a", "Intro", day, true), topic("b", "Loops", day, false))
	db.addCourse(other.ID, "EE201")
	db.addCourse(owner.ID, "CS102", topic("c", "Trees", day, false))

	svc := NewCourseService(memCourses{db}, memSyllabi{db}, nil, db.authz(), nopLogger())
	list, err := svc.List(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "CS102", list[0].CourseCode)
	assert.Equal(t, "CS101", list[1].CourseCode)
	assert.Equal(t, 2, list[1].TopicsTotal)
	assert.Equal(t, 1, list[1].TopicsCompleted)
}

func TestCourseGetOwnership(t *testing.T) {
	db := newMemDB()
	owner := db.addUser("Owner", "owner@college.edu")
	stranger := db.addUser("Stranger", "stranger@college.edu")
	c, s := db.addCourse(owner.ID, "CS101", topic("a", "Intro", models.NewDate(2024, 1, 15), false))

	svc := NewCourseService(memCourses{db}, memSyllabi{db}, nil, db.authz(), nopLogger())
	ctx := context.Background()

	resp, err := svc.Get(ctx, owner.ID, c.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Syllabus)
	assert.Equal(t, s.ID, resp.Syllabus.ID)
	assert.Equal(t, "2024-01-15", resp.Syllabus.Topics[0].TargetDate)

	_, err = svc.Get(ctx, stranger.ID, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Get(ctx, owner.ID, 4242)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCourseDelete(t *testing.T) {
	db := newMemDB()
	owner := db.addUser("Owner", "owner@college.edu")
	stranger := db.addUser("Stranger", "stranger@college.edu")
	c, s := db.addCourse(owner.ID, "CS101")
	db.syllabi[s.ID].SourceDocument = "syllabi/doc.pdf"

	docs := newFakeDocs()
	svc := NewCourseService(memCourses{db}, memSyllabi{db}, docs, db.authz(), nopLogger())
	ctx := context.Background()

	err := svc.Delete(ctx, stranger.ID, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Contains(t, db.courses, c.ID, "nothing removed for non-owner")

	require.NoError(t, svc.Delete(ctx, owner.ID, c.ID))
	assert.NotContains(t, db.courses, c.ID)
	assert.NotContains(t, db.syllabi, s.ID)
	assert.Equal(t, []string{"syllabi/doc.pdf"}, docs.deleted)

	err = svc.Delete(ctx, owner.ID, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
