package repositories

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

var dollar = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func TestInsertTopicsQuery(t *testing.T) {
	topics := []models.Topic{
		{TopicID: "a", Module: "M1", Title: "Intro", Description: "Intro", LectureHours: 2, TargetDate: models.NewDate(2024, 1, 15)},
		{TopicID: "b", Module: "M1", Title: "Lists", Description: "Lists", LectureHours: 1, TargetDate: models.NewDate(2024, 1, 16)},
	}

	sql, args, err := insertTopicsQuery(dollar, 7, topics).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "INSERT INTO syllabus_topics (syllabus_id,topic_id,position,module,title,description,lecture_hours,target_date,is_completed)")
	assert.Contains(t, sql, "($10,$11,$12,$13,$14,$15,$16,$17,$18)")
	require.Len(t, args, 18)
	assert.Equal(t, int64(7), args[0])
	assert.Equal(t, "b", args[10])
	assert.Equal(t, 1, args[11], "position follows slice order")
	assert.Equal(t, models.NewDate(2024, 1, 16).Time(), args[16])
}

func TestCourseSelectJoinsSyllabus(t *testing.T) {
	r := &CourseRepository{sb: dollar}
	sql, args, err := r.selectCourses().Where(squirrel.Eq{"c.faculty_id": int64(3)}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "LEFT JOIN syllabi s ON s.course_id = c.id")
	assert.Contains(t, sql, "WHERE c.faculty_id = $1")
	assert.Equal(t, []interface{}{int64(3)}, args)
}
