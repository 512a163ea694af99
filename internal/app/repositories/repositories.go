package repositories

import (
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	CourseRepository   *CourseRepository
	SyllabusRepository *SyllabusRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(database),
		CourseRepository:   NewCourseRepository(database),
		SyllabusRepository: NewSyllabusRepository(database),
	}
}
