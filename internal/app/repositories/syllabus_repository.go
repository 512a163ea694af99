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

// SyllabusRepository handles database operations for syllabi and their topics
type SyllabusRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewSyllabusRepository creates a new SyllabusRepository
func NewSyllabusRepository(database *db.PostgresDB) *SyllabusRepository {
	return &SyllabusRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *SyllabusRepository) get(ctx context.Context, where squirrel.Sqlizer) (*models.Syllabus, error) {
	sql, args, err := r.sb.Select("id", "course_id", "COALESCE(source_document, '')", "created_at", "updated_at").
		From("syllabi").
		Where(where).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get syllabus SQL")
		return nil, err
	}

	var s models.Syllabus
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CourseID, &s.SourceDocument, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrSyllabusNotFound
		}
		logger.Error().Err(err).Msg("Error scanning syllabus")
		return nil, err
	}

	topics, err := loadTopics(ctx, r.db.Pool, r.sb, []int64{s.ID})
	if err != nil {
		return nil, err
	}
	s.Topics = topics[s.ID]
	if s.Topics == nil {
		s.Topics = []models.Topic{}
	}
	return &s, nil
}

// GetByID retrieves a syllabus with its topics in teaching order.
func (r *SyllabusRepository) GetByID(ctx context.Context, id int64) (*models.Syllabus, error) {
	return r.get(ctx, squirrel.Eq{"id": id})
}

// GetByCourseID retrieves the syllabus of a course.
func (r *SyllabusRepository) GetByCourseID(ctx context.Context, courseID int64) (*models.Syllabus, error) {
	return r.get(ctx, squirrel.Eq{"course_id": courseID})
}

// ListOpenIDs returns ids of syllabi with at least one incomplete topic.
func (r *SyllabusRepository) ListOpenIDs(ctx context.Context) ([]int64, error) {
	sql, args, err := r.sb.Select("DISTINCT syllabus_id").
		From("syllabus_topics").
		Where(squirrel.Eq{"is_completed": false}).
		OrderBy("syllabus_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list open syllabi SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing open syllabi")
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

// SetTopicCompletion updates exactly one topic row. Other topics of the syllabus
// are untouched.
func (r *SyllabusRepository) SetTopicCompletion(ctx context.Context, syllabusID int64, topicID string, completed bool) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Update("syllabus_topics").
			Set("is_completed", completed).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"syllabus_id": syllabusID, "topic_id": topicID}).
			ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Int64("syllabusID", syllabusID).Str("topicID", topicID).Msg("Error updating topic status")
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrTopicNotFound
		}

		sql, args, err = r.sb.Update("syllabi").
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": syllabusID}).
			ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
}
