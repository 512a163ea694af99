package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
)

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "CS-201.ics", exportFilename("CS 201", ".ics"))
	assert.Equal(t, "syllabus.xlsx", exportFilename("///", ".xlsx"))
}

func TestExports(t *testing.T) {
	db := newMemDB()
	owner := db.addUser("Owner", "owner@college.edu")
	stranger := db.addUser("Stranger", "stranger@college.edu")
	c, _ := db.addCourse(owner.ID, "CS201", topic("t1", "Arrays", models.NewDate(2024, 1, 15), false))
	svc := NewExportService(memSyllabi{db}, db.authz())
	ctx := context.Background()

	name, ics, err := svc.Calendar(ctx, owner.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "CS201.ics", name)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "Arrays")

	name, buf, err := svc.Workbook(ctx, owner.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "CS201.xlsx", name)
	assert.Equal(t, []byte("PK"), buf.Bytes()[:2])

	_, _, err = svc.Calendar(ctx, stranger.ID, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
