package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/db"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/logger"
)

// CourseRepository handles database operations for courses. A course and its
// syllabus are always written together.
type CourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// selectCourses joins the syllabus id, which is never stored on the course row.
func (r *CourseRepository) selectCourses() squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id", "c.name", "c.code", "c.faculty_id",
		"c.monday_hours", "c.tuesday_hours", "c.wednesday_hours", "c.thursday_hours", "c.friday_hours",
		"s.id", "c.created_at", "c.updated_at",
	).From("courses c").
		LeftJoin("syllabi s ON s.course_id = c.id")
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	ws := &c.WeeklySchedule
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.FacultyID,
		&ws.Monday, &ws.Tuesday, &ws.Wednesday, &ws.Thursday, &ws.Friday,
		&c.SyllabusID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course")
		return nil, err
	}
	return &c, nil
}

// ListByFaculty returns the faculty's courses newest first, each with its syllabus
// and topics loaded.
func (r *CourseRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]*models.Course, error) {
	sql, args, err := r.selectCourses().
		Where(squirrel.Eq{"c.faculty_id": facultyID}).
		OrderBy("c.created_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", facultyID).Msg("Error listing courses")
		return nil, err
	}
	defer rows.Close()

	courses := []*models.Course{}
	var syllabusIDs []int64
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		if c.SyllabusID != nil {
			syllabusIDs = append(syllabusIDs, *c.SyllabusID)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topics, err := loadTopics(ctx, r.db.Pool, r.sb, syllabusIDs)
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		if c.SyllabusID != nil {
			c.Syllabus = &models.Syllabus{ID: *c.SyllabusID, CourseID: c.ID, Topics: topics[*c.SyllabusID]}
		}
	}
	return courses, nil
}

// GetByID retrieves a course without its syllabus.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.selectCourses().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course SQL")
		return nil, err
	}
	return scanCourse(r.db.Pool.QueryRow(ctx, sql, args...))
}

// CreateWithSyllabus inserts course, syllabus and topics in one transaction and
// links them. On success course.SyllabusID and course.Syllabus are set.
func (r *CourseRepository) CreateWithSyllabus(ctx context.Context, course *models.Course, syllabus *models.Syllabus) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		ws := course.WeeklySchedule
		sql, args, err := r.sb.Insert("courses").
			Columns("name", "code", "faculty_id",
				"monday_hours", "tuesday_hours", "wednesday_hours", "thursday_hours", "friday_hours").
			Values(course.Name, course.Code, course.FacultyID,
				ws.Monday, ws.Tuesday, ws.Wednesday, ws.Thursday, ws.Friday).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt); err != nil {
			logger.Error().Err(err).Msg("Error inserting course")
			return err
		}

		var docKey *string
		if syllabus.SourceDocument != "" {
			docKey = &syllabus.SourceDocument
		}
		sql, args, err = r.sb.Insert("syllabi").
			Columns("course_id", "source_document").
			Values(course.ID, docKey).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&syllabus.ID, &syllabus.CreatedAt, &syllabus.UpdatedAt); err != nil {
			logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error inserting syllabus")
			return err
		}
		syllabus.CourseID = course.ID

		if len(syllabus.Topics) > 0 {
			sql, args, err = insertTopicsQuery(r.sb, syllabus.ID, syllabus.Topics).ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				logger.Error().Err(err).Int64("syllabusID", syllabus.ID).Msg("Error inserting topics")
				return err
			}
			for i := range syllabus.Topics {
				syllabus.Topics[i].Position = i
			}
		}

		course.SyllabusID = &syllabus.ID
		course.Syllabus = syllabus
		return nil
	})
}

// Delete removes a course with its syllabus and topics and returns the stored
// source document key, if any.
func (r *CourseRepository) Delete(ctx context.Context, id int64) (string, error) {
	var docKey string
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Select("COALESCE(source_document, '')").
			From("syllabi").
			Where(squirrel.Eq{"course_id": id}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&docKey); err != nil && !isNoRows(err) {
			return err
		}

		sql, args, err = r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Int64("courseID", id).Msg("Error deleting course")
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return docKey, nil
}
