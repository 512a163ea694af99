package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/deadline"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/email"
)

// ErrSweepInProgress is returned when a sweep is started while another runs.
var ErrSweepInProgress = errors.New("deadline sweep already in progress")

// SweepReport summarizes one deadline sweep.
type SweepReport struct {
	SyllabiScanned      int `json:"syllabiScanned"`
	Skipped             int `json:"skipped"`
	Failed              int `json:"failed"`
	NotificationsSent   int `json:"notificationsSent"`
	NotificationsFailed int `json:"notificationsFailed"`
}

// DeadlineService scans open syllabi and emails their owners about overdue
// and upcoming topics. It never modifies data.
type DeadlineService interface {
	Sweep(ctx context.Context) (*SweepReport, error)
}

// DeadlineConfig configures the sweep.
type DeadlineConfig struct {
	Location   *time.Location
	WindowDays int
}

type deadlineServiceImpl struct {
	syllabi  SyllabusStore
	courses  CourseStore
	users    UserStore
	notifier ReminderNotifier
	loc      *time.Location
	window   int
	now      func() time.Time
	running  atomic.Bool
	logger   zerolog.Logger
}

// NewDeadlineService creates a new DeadlineService
func NewDeadlineService(
	syllabi SyllabusStore,
	courses CourseStore,
	users UserStore,
	notifier ReminderNotifier,
	cfg DeadlineConfig,
	logger zerolog.Logger,
) DeadlineService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	window := cfg.WindowDays
	if window < 0 {
		window = deadline.DefaultWindowDays
	}
	return &deadlineServiceImpl{
		syllabi:  syllabi,
		courses:  courses,
		users:    users,
		notifier: notifier,
		loc:      loc,
		window:   window,
		now:      time.Now,
		logger:   logger,
	}
}

// Sweep runs one pass over every syllabus with incomplete topics. Failures of
// one syllabus or one email do not stop the pass.
func (s *deadlineServiceImpl) Sweep(ctx context.Context) (*SweepReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSweepInProgress
	}
	defer s.running.Store(false)

	started := time.Now()
	today := deadline.Today(s.now(), s.loc)
	report := &SweepReport{}

	ids, err := s.syllabi.ListOpenIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list syllabi for deadline sweep")
		return nil, err
	}

	s.logger.Info().Str("today", today.String()).Int("syllabi", len(ids)).Msg("Deadline sweep started")

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			s.logger.Warn().Err(err).Msg("Deadline sweep interrupted")
			return report, err
		}
		report.SyllabiScanned++
		s.sweepSyllabus(ctx, id, today, report)
	}

	attempted := report.NotificationsSent + report.NotificationsFailed
	if report.NotificationsFailed > 0 {
		s.logger.Warn().Msgf("%d of %d notifications failed", report.NotificationsFailed, attempted)
	}
	s.logger.Info().
		Int("scanned", report.SyllabiScanned).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Int("sent", report.NotificationsSent).
		Dur("elapsed", time.Since(started)).
		Msg("Deadline sweep finished")
	return report, nil
}

func (s *deadlineServiceImpl) sweepSyllabus(ctx context.Context, syllabusID int64, today models.Date, report *SweepReport) {
	log := s.logger.With().Int64("syllabusID", syllabusID).Logger()

	syllabus, err := s.syllabi.GetByID(ctx, syllabusID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			log.Debug().Msg("Syllabus vanished during sweep")
			report.Skipped++
			return
		}
		log.Error().Err(err).Msg("Failed to load syllabus")
		report.Failed++
		return
	}

	course, err := s.courses.GetByID(ctx, syllabus.CourseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			log.Debug().Int64("courseID", syllabus.CourseID).Msg("Syllabus has no course, skipping")
			report.Skipped++
			return
		}
		log.Error().Err(err).Msg("Failed to load course")
		report.Failed++
		return
	}

	faculty, err := s.users.GetByID(ctx, course.FacultyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			log.Debug().Int64("facultyID", course.FacultyID).Msg("Course faculty not found, skipping")
			report.Skipped++
			return
		}
		log.Error().Err(err).Msg("Failed to load faculty")
		report.Failed++
		return
	}

	overdue, upcoming := deadline.Partition(syllabus.Topics, today, s.window)
	to := email.Address{Name: faculty.Name, Email: faculty.Email}

	batches := []struct {
		kind   deadline.Status
		topics []models.Topic
	}{
		{deadline.StatusOverdue, overdue},
		{deadline.StatusUpcoming, upcoming},
	}
	for _, b := range batches {
		if len(b.topics) == 0 {
			continue
		}
		if err := s.notifier.Notify(ctx, to, course, b.topics, b.kind); err != nil {
			report.NotificationsFailed++
			continue
		}
		report.NotificationsSent++
	}
}
