package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/gophnotes-server/internal/apierrors"
	"github.com/dtroode/gophnotes-server/internal/logger"
	"github.com/dtroode/gophnotes-server/internal/metrics"
	"github.com/dtroode/gophnotes-server/internal/model"
)

const (
	operationRegister = "register"
	operationLogin    = "login"
)

// AuthRecorder receives register and login outcomes.
type AuthRecorder interface {
	ObserveAuth(operation, outcome string)
}

type nopAuthRecorder struct{}

func (nopAuthRecorder) ObserveAuth(string, string) {}

// Auth registers accounts and authenticates credentials.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	recorder     AuthRecorder
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	recorder AuthRecorder,
	logger *logger.Logger,
) *Auth {
	if recorder == nil {
		recorder = nopAuthRecorder{}
	}
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		recorder:     recorder,
		logger:       logger,
	}
}

// Register creates an account and issues a token for it.
func (a *Auth) Register(ctx context.Context, creds model.Credentials) (model.AuthResult, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", creds.Email)

	if creds.Email == "" || creds.Password == "" {
		a.recorder.ObserveAuth(operationRegister, metrics.OutcomeInvalid)
		return model.AuthResult{}, apierrors.NewErrMissingCredentials()
	}

	_, err := a.userStore.GetByEmail(ctx, creds.Email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", creds.Email)
		a.recorder.ObserveAuth(operationRegister, metrics.OutcomeConflict)
		return model.AuthResult{}, apierrors.NewErrUserExists()
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.recorder.ObserveAuth(operationRegister, metrics.OutcomeError)
		return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	digest, err := a.hasher.Hash(creds.Password)
	if err != nil {
		if errors.Is(err, model.ErrPasswordTooLong) {
			a.recorder.ObserveAuth(operationRegister, metrics.OutcomeInvalid)
			return model.AuthResult{}, apierrors.NewErrPasswordTooLong()
		}
		a.recorder.ObserveAuth(operationRegister, metrics.OutcomeError)
		return model.AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, creds.Email, digest)
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			a.logger.Info("Auth service: concurrent registration lost the race",
				"email", creds.Email)
			a.recorder.ObserveAuth(operationRegister, metrics.OutcomeConflict)
			return model.AuthResult{}, apierrors.NewErrUserExists()
		}
		a.recorder.ObserveAuth(operationRegister, metrics.OutcomeError)
		return model.AuthResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.tokenManager.Issue(model.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		a.recorder.ObserveAuth(operationRegister, metrics.OutcomeError)
		return model.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"email", user.Email,
		"user_id", user.ID)
	a.recorder.ObserveAuth(operationRegister, metrics.OutcomeSuccess)

	return model.AuthResult{User: user.Public(), Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords produce the same error.
func (a *Auth) Login(ctx context.Context, creds model.Credentials) (model.AuthResult, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", creds.Email)

	if creds.Email == "" || creds.Password == "" {
		a.recorder.ObserveAuth(operationLogin, metrics.OutcomeInvalid)
		return model.AuthResult{}, apierrors.NewErrMissingCredentials()
	}

	user, err := a.userStore.GetByEmail(ctx, creds.Email)
	if errors.Is(err, model.ErrNotFound) {
		a.hasher.Burn(creds.Password)
		a.logger.Debug("Auth service: login for unknown email",
			"email", creds.Email)
		a.recorder.ObserveAuth(operationLogin, metrics.OutcomeInvalid)
		return model.AuthResult{}, apierrors.NewErrInvalidCredentials()
	}
	if err != nil {
		a.recorder.ObserveAuth(operationLogin, metrics.OutcomeError)
		return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(creds.Password, user.PasswordHash) {
		a.logger.Debug("Auth service: password mismatch",
			"user_id", user.ID)
		a.recorder.ObserveAuth(operationLogin, metrics.OutcomeInvalid)
		return model.AuthResult{}, apierrors.NewErrInvalidCredentials()
	}

	token, err := a.tokenManager.Issue(model.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		a.recorder.ObserveAuth(operationLogin, metrics.OutcomeError)
		return model.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed successfully",
		"user_id", user.ID)
	a.recorder.ObserveAuth(operationLogin, metrics.OutcomeSuccess)

	return model.AuthResult{User: user.Public(), Token: token}, nil
}
