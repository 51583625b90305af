package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	authService "github.com/allisson/courses/internal/auth/service"
	courseDomain "github.com/allisson/courses/internal/course/domain"
	courseUsecase "github.com/allisson/courses/internal/course/usecase"
	"github.com/allisson/courses/internal/database"
	userDomain "github.com/allisson/courses/internal/user/domain"
	userUsecase "github.com/allisson/courses/internal/user/usecase"
)

// seedPassword is the shared password of the demo accounts.
const seedPassword = "password"

// seedUser describes one demo account.
type seedUser struct {
	username string
	email    string
	roles    []userDomain.Role
}

// seedCourse describes one demo course with its student enrollments.
type seedCourse struct {
	name      string
	category  string
	topic     string
	hours     float64
	rating    float64
	createdBy string
	enrolled  []string
}

var seedUsers = []seedUser{
	{username: "gru", email: "gru@email.com", roles: []userDomain.Role{userDomain.RoleInstructor}},
	{username: "lucy", email: "lucy@email.com", roles: []userDomain.Role{userDomain.RoleInstructor}},
	{username: "bob", email: "bob@email.com", roles: []userDomain.Role{userDomain.RoleStudent}},
	{username: "kevin", email: "kevin@email.com", roles: []userDomain.Role{userDomain.RoleStudent}},
	{username: "stuart", email: "stuart@email.com", roles: []userDomain.Role{userDomain.RoleStudent}},
	{username: "admin", email: "admin@email.com", roles: []userDomain.Role{userDomain.RoleAdmin}},
}

var seedCourses = []seedCourse{
	{
		name:      "Spring Boot Fundamentals",
		category:  "Programming",
		topic:     "Spring",
		hours:     5,
		rating:    4.5,
		createdBy: "gru",
		enrolled:  []string{"bob", "kevin", "stuart"},
	},
	{
		name:      "Secure REST APIs with Spring Security",
		category:  "Programming",
		topic:     "Spring Security",
		hours:     1.5,
		rating:    4,
		createdBy: "lucy",
		enrolled:  []string{"kevin", "stuart"},
	},
	{
		name:      "Master Spring Data JPA",
		category:  "Programming",
		topic:     "Spring Data",
		hours:     3.5,
		rating:    5,
		createdBy: "gru",
		enrolled:  []string{"stuart"},
	},
	{
		name:      "Spring Boot Microservices and Spring Cloud",
		category:  "Technology",
		topic:     "Microservice",
		hours:     15,
		rating:    5,
		createdBy: "lucy",
		enrolled:  []string{"bob"},
	},
}

// RunSeed loads the demo dataset: two instructors, three students, an admin
// and four courses with enrollments. The whole load runs in a single
// transaction and is skipped when the accounts already exist.
func RunSeed(
	ctx context.Context,
	txManager database.TxManager,
	userRepo userUsecase.UserRepository,
	courseRepo courseUsecase.CourseRepository,
	passwordService authService.PasswordService,
	logger *slog.Logger,
) error {
	_, err := userRepo.GetByUsername(ctx, seedUsers[0].username)
	if err == nil {
		logger.Info("seed data already present, skipping")
		return nil
	}
	if !errors.Is(err, userDomain.ErrUserNotFound) {
		return fmt.Errorf("failed to check existing seed data: %w", err)
	}

	err = txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, su := range seedUsers {
			passwordHash, err := passwordService.HashPassword(seedPassword)
			if err != nil {
				return fmt.Errorf("failed to hash password for %s: %w", su.username, err)
			}

			user := &userDomain.User{
				ID:           uuid.Must(uuid.NewV7()),
				Username:     su.username,
				Email:        su.email,
				PasswordHash: passwordHash,
				Roles:        su.roles,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				return fmt.Errorf("failed to create user %s: %w", su.username, err)
			}
		}

		for _, sc := range seedCourses {
			course := &courseDomain.Course{
				ID:        uuid.Must(uuid.NewV7()),
				Name:      sc.name,
				Category:  sc.category,
				Topic:     sc.topic,
				Hours:     sc.hours,
				Rating:    sc.rating,
				CreatedBy: sc.createdBy,
			}
			if err := courseRepo.Create(ctx, course); err != nil {
				return fmt.Errorf("failed to create course %s: %w", sc.name, err)
			}

			for _, username := range sc.enrolled {
				if err := courseRepo.Enroll(ctx, course.ID, username); err != nil {
					return fmt.Errorf("failed to enroll %s in %s: %w", username, sc.name, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("seed completed successfully",
		slog.Int("users", len(seedUsers)),
		slog.Int("courses", len(seedCourses)),
	)
	return nil
}
