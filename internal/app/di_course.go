package app

import (
	"fmt"

	courseHTTP "github.com/allisson/courses/internal/course/http"
	courseRepo "github.com/allisson/courses/internal/course/repository"
	courseUsecase "github.com/allisson/courses/internal/course/usecase"
)

// CourseRepository returns the course repository based on database driver.
func (c *Container) CourseRepository() (courseUsecase.CourseRepository, error) {
	var err error
	c.courseRepoInit.Do(func() {
		c.courseRepo, err = c.initCourseRepository()
		if err != nil {
			c.initErrors["courseRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["courseRepo"]; exists {
		return nil, storedErr
	}
	return c.courseRepo, nil
}

// CourseUseCase returns the course use case.
func (c *Container) CourseUseCase() (courseUsecase.UseCase, error) {
	var err error
	c.courseUseCaseInit.Do(func() {
		c.courseUseCase, err = c.initCourseUseCase()
		if err != nil {
			c.initErrors["courseUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["courseUseCase"]; exists {
		return nil, storedErr
	}
	return c.courseUseCase, nil
}

// CourseHandler returns the HTTP handler for course operations.
func (c *Container) CourseHandler() (*courseHTTP.CourseHandler, error) {
	var err error
	c.courseHandlerInit.Do(func() {
		c.courseHandler, err = c.initCourseHandler()
		if err != nil {
			c.initErrors["courseHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["courseHandler"]; exists {
		return nil, storedErr
	}
	return c.courseHandler, nil
}

// initCourseRepository creates the course repository based on the database driver.
func (c *Container) initCourseRepository() (courseUsecase.CourseRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for course repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return courseRepo.NewPostgreSQLCourseRepository(db), nil
	case "mysql":
		return courseRepo.NewMySQLCourseRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCourseUseCase creates the course use case with all its dependencies.
func (c *Container) initCourseUseCase() (courseUsecase.UseCase, error) {
	courseRepository, err := c.CourseRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get course repository for course use case: %w", err)
	}

	dispatcher, err := c.Dispatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatcher for course use case: %w", err)
	}

	return courseUsecase.NewCourseUseCase(courseRepository, dispatcher), nil
}

// initCourseHandler creates the course HTTP handler with all its dependencies.
func (c *Container) initCourseHandler() (*courseHTTP.CourseHandler, error) {
	courseUseCase, err := c.CourseUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get course use case for course handler: %w", err)
	}

	logger := c.Logger()

	return courseHTTP.NewCourseHandler(courseUseCase, logger), nil
}
