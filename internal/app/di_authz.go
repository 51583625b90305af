package app

import (
	"fmt"

	"github.com/allisson/courses/internal/authz"
)

// Dispatcher returns the authorization dispatcher with all resource evaluators registered.
func (c *Container) Dispatcher() (*authz.Dispatcher, error) {
	var err error
	c.dispatcherInit.Do(func() {
		c.dispatcher, err = c.initDispatcher()
		if err != nil {
			c.initErrors["dispatcher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["dispatcher"]; exists {
		return nil, storedErr
	}
	return c.dispatcher, nil
}

// initDispatcher creates the dispatcher and registers the course and user evaluators.
func (c *Container) initDispatcher() (*authz.Dispatcher, error) {
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for dispatcher: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for dispatcher: %w", err)
	}

	courseRepo, err := c.CourseRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get course repository for dispatcher: %w", err)
	}

	dispatcher := authz.NewDispatcher(businessMetrics, c.Logger())

	if err := dispatcher.Register(authz.NewCourseEvaluator(courseRepo)); err != nil {
		return nil, fmt.Errorf("failed to register course evaluator: %w", err)
	}

	if err := dispatcher.Register(authz.NewUserEvaluator(userRepo)); err != nil {
		return nil, fmt.Errorf("failed to register user evaluator: %w", err)
	}

	return dispatcher, nil
}
