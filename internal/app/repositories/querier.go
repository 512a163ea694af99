package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/logger"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var topicColumns = []string{
	"syllabus_id", "topic_id", "position", "module", "title",
	"description", "lecture_hours", "target_date", "is_completed",
}

// insertTopicsQuery builds one multi-row insert for all topics of a syllabus.
func insertTopicsQuery(sb squirrel.StatementBuilderType, syllabusID int64, topics []models.Topic) squirrel.InsertBuilder {
	q := sb.Insert("syllabus_topics").Columns(topicColumns...)
	for i, t := range topics {
		q = q.Values(syllabusID, t.TopicID, i, t.Module, t.Title,
			t.Description, t.LectureHours, t.TargetDate.Time(), t.IsCompleted)
	}
	return q
}

// loadTopics returns the topics of the given syllabi keyed by syllabus id, in position order.
func loadTopics(ctx context.Context, q querier, sb squirrel.StatementBuilderType, syllabusIDs []int64) (map[int64][]models.Topic, error) {
	out := make(map[int64][]models.Topic, len(syllabusIDs))
	if len(syllabusIDs) == 0 {
		return out, nil
	}

	sql, args, err := sb.Select(topicColumns...).
		From("syllabus_topics").
		Where(squirrel.Eq{"syllabus_id": syllabusIDs}).
		OrderBy("syllabus_id", "position").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building load topics SQL")
		return nil, err
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying syllabus topics")
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			syllabusID int64
			target     time.Time
			t          models.Topic
		)
		if err := rows.Scan(&syllabusID, &t.TopicID, &t.Position, &t.Module, &t.Title,
			&t.Description, &t.LectureHours, &target, &t.IsCompleted); err != nil {
			logger.Error().Err(err).Msg("Error scanning syllabus topic")
			return nil, err
		}
		t.TargetDate = models.DateOf(target)
		out[syllabusID] = append(out[syllabusID], t)
	}
	return out, rows.Err()
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
