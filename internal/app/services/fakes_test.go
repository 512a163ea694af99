package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	appAuth "github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/auth"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/deadline"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/email"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/extraction"
)

// memDB is an in-memory stand-in for the three repositories.
type memDB struct {
	mu        sync.Mutex
	seq       int64
	users     map[int64]*models.User
	courses   map[int64]*models.Course
	syllabi   map[int64]*models.Syllabus
	createErr error
	loadErr   map[int64]error
}

func newMemDB() *memDB {
	return &memDB{
		users:   map[int64]*models.User{},
		courses: map[int64]*models.Course{},
		syllabi: map[int64]*models.Syllabus{},
		loadErr: map[int64]error{},
	}
}

func (m *memDB) next() int64 { m.seq++; return m.seq }

func copySyllabus(s *models.Syllabus) *models.Syllabus {
	cp := *s
	cp.Topics = append([]models.Topic(nil), s.Topics...)
	return &cp
}

func (m *memDB) addUser(name, mail string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &models.User{ID: m.next(), Name: name, Email: mail}
	m.users[u.ID] = u
	return u
}

// addCourse stores a course owned by facultyID with a syllabus of topics.
func (m *memDB) addCourse(facultyID int64, code string, topics ...models.Topic) (*models.Course, *models.Syllabus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &models.Course{ID: m.next(), Name: "Course " + code, Code: code, FacultyID: facultyID}
	s := &models.Syllabus{ID: m.next(), CourseID: c.ID, Topics: topics}
	for i := range s.Topics {
		s.Topics[i].Position = i
	}
	c.SyllabusID = &s.ID
	m.courses[c.ID] = c
	m.syllabi[s.ID] = s
	return c, s
}

type memUsers struct{ *memDB }

func (m memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	u.ID = m.next()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (m memUsers) GetByEmail(_ context.Context, mail string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == mail {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type memCourses struct{ *memDB }

func (m memCourses) ListByFaculty(_ context.Context, facultyID int64) ([]*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Course
	for _, c := range m.courses {
		if c.FacultyID != facultyID {
			continue
		}
		cp := *c
		for _, s := range m.syllabi {
			if s.CourseID == c.ID {
				cp.Syllabus = copySyllabus(s)
			}
		}
		out = append(out, &cp)
	}
	// newest first: ids grow with creation
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m memCourses) GetByID(_ context.Context, id int64) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (m memCourses) CreateWithSyllabus(_ context.Context, c *models.Course, s *models.Syllabus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = m.next()
	s.ID = m.next()
	s.CourseID = c.ID
	c.SyllabusID = &s.ID
	c.Syllabus = s
	cc := *c
	cc.Syllabus = nil
	m.courses[c.ID] = &cc
	m.syllabi[s.ID] = copySyllabus(s)
	return nil
}

func (m memCourses) Delete(_ context.Context, id int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return "", apperrors.ErrCourseNotFound
	}
	var key string
	for sid, s := range m.syllabi {
		if s.CourseID == id {
			key = s.SourceDocument
			delete(m.syllabi, sid)
		}
	}
	delete(m.courses, id)
	return key, nil
}

type memSyllabi struct{ *memDB }

func (m memSyllabi) GetByID(_ context.Context, id int64) (*models.Syllabus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.loadErr[id]; err != nil {
		return nil, err
	}
	if s, ok := m.syllabi[id]; ok {
		return copySyllabus(s), nil
	}
	return nil, apperrors.ErrSyllabusNotFound
}

func (m memSyllabi) GetByCourseID(_ context.Context, courseID int64) (*models.Syllabus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.syllabi {
		if s.CourseID == courseID {
			return copySyllabus(s), nil
		}
	}
	return nil, apperrors.ErrSyllabusNotFound
}

func (m memSyllabi) ListOpenIDs(_ context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for id, s := range m.syllabi {
		if len(s.OpenTopics()) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m memSyllabi) SetTopicCompletion(_ context.Context, syllabusID int64, topicID string, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.syllabi[syllabusID]
	if !ok {
		return apperrors.ErrTopicNotFound
	}
	t, ok := s.FindTopic(topicID)
	if !ok {
		return apperrors.ErrTopicNotFound
	}
	t.IsCompleted = completed
	return nil
}

func (m *memDB) authz() *appAuth.AuthorizationService {
	return appAuth.NewAuthorizationService(memCourses{m}, memSyllabi{m})
}

type fakeExtractor struct {
	topics []models.Topic
	err    error
	got    []extraction.Request
}

func (f *fakeExtractor) Extract(_ context.Context, req extraction.Request) ([]models.Topic, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Topic(nil), f.topics...), nil
}

type fakeDocs struct {
	saved   map[string][]byte
	deleted []string
	saveErr error
}

func newFakeDocs() *fakeDocs { return &fakeDocs{saved: map[string][]byte{}} }

func (f *fakeDocs) Save(_ context.Context, filename, _ string, data []byte) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	key := fmt.Sprintf("syllabi/%d-%s", len(f.saved)+1, filename)
	f.saved[key] = data
	return key, nil
}

func (f *fakeDocs) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.saved, key)
	return nil
}

type notifyCall struct {
	to     string
	course string
	kind   deadline.Status
	topics []string
}

type fakeNotifier struct {
	mu     sync.Mutex
	calls  []notifyCall
	failTo map[string]bool
}

func (f *fakeNotifier) Notify(_ context.Context, to email.Address, course *models.Course, topics []models.Topic, kind deadline.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := notifyCall{to: to.Email, course: course.Code, kind: kind}
	for _, t := range topics {
		call.topics = append(call.topics, t.Title)
	}
	f.calls = append(f.calls, call)
	if f.failTo[to.Email] {
		return fmt.Errorf("smtp: mailbox unavailable")
	}
	return nil
}

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func topic(id, title string, target models.Date, done bool) models.Topic {
	return models.Topic{
		TopicID:      id,
		Module:       "Module 1",
		Title:        title,
		Description:  title,
		LectureHours: 1,
		TargetDate:   target,
		IsCompleted:  done,
	}
}
