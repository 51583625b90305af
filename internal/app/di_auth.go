package app

import (
	"fmt"

	authHTTP "github.com/allisson/courses/internal/auth/http"
	authService "github.com/allisson/courses/internal/auth/service"
	authUsecase "github.com/allisson/courses/internal/auth/usecase"
	"github.com/allisson/courses/internal/config"
)

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// TokenService returns the opaque token generation service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// JWTService returns the token signing service used in jwt mode.
func (c *Container) JWTService() (authService.JWTService, error) {
	var err error
	c.jwtServiceInit.Do(func() {
		c.jwtService, err = authService.NewJWTService(c.config.JWTBase64Secret, c.config.JWTSigningAlgorithm)
		if err != nil {
			c.initErrors["jwtService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["jwtService"]; exists {
		return nil, storedErr
	}
	return c.jwtService, nil
}

// TokenUseCase returns the token use case selected by the configured auth mode.
func (c *Container) TokenUseCase() (authUsecase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// TokenHandler returns the HTTP handler for token operations.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

// initTokenUseCase creates the token use case with all its dependencies.
// The auth mode decides the implementation: opaque tokens stored on the user
// record, or self-contained signed tokens.
func (c *Container) initTokenUseCase() (authUsecase.TokenUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for token use case: %w", err)
	}

	passwordService := c.PasswordService()

	var baseUseCase authUsecase.TokenUseCase

	switch c.config.AuthMode {
	case config.AuthModeOpaque:
		baseUseCase = authUsecase.NewOpaqueTokenUseCase(c.config, userRepo, passwordService, c.TokenService())
	case config.AuthModeJWT:
		jwtService, err := c.JWTService()
		if err != nil {
			return nil, fmt.Errorf("failed to get jwt service for token use case: %w", err)
		}
		baseUseCase = authUsecase.NewJWTTokenUseCase(c.config, userRepo, passwordService, jwtService)
	default:
		return nil, fmt.Errorf("unsupported auth mode: %s", c.config.AuthMode)
	}

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return authUsecase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenHandler creates the token HTTP handler with all its dependencies.
func (c *Container) initTokenHandler() (*authHTTP.TokenHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}

	logger := c.Logger()

	return authHTTP.NewTokenHandler(tokenUseCase, logger), nil
}
