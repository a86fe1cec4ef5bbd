// Package services contains the application services of the kinotv client.
// This file defines the authentication service: sign-up, sign-in, sign-out,
// session restore across restarts, and the password-reset workflow.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/batorigb/kinotv/internal/client/gateway"
	"github.com/batorigb/kinotv/internal/client/models"
	"github.com/batorigb/kinotv/internal/client/repositories/session"
	"github.com/batorigb/kinotv/internal/common"
	"github.com/batorigb/kinotv/internal/logging"
)

// emailDomain is appended to phone numbers to build the synthetic email the
// platform's session endpoint requires.
const emailDomain = "kinotv.mn"

// authAPI is the slice of the gateway the auth service needs.
type authAPI interface {
	CreateAccount(ctx context.Context, userID, email, password, name string) error
	CreateSession(ctx context.Context, email, password string) (gateway.Session, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	CreateProfile(ctx context.Context, userID, name, phone, registrationID string) error
	DeleteSession(ctx context.Context) error
	SetSession(token string)
	ClearSession()
	ExecuteJSON(ctx context.Context, functionID string, in, out any) error
}

// AuthService defines authentication operations for the CLI.
//
// SignUp creates the account, immediately establishes a session (an account
// without a session is not usable) and writes the profile document. SignOut
// ends the remote session; failures surface, they are not swallowed. Restore
// brings back a persisted session after a restart and returns (nil, nil)
// when there is nothing valid to restore.
type AuthService interface {
	SignUp(ctx context.Context, name, phone, registrationID string, password []byte) (*models.User, error)
	SignIn(ctx context.Context, identifier string, password []byte) (*models.User, error)
	SignOut(ctx context.Context) error
	Restore(ctx context.Context) (*models.User, error)
	ResetPassword(ctx context.Context, registrationID string, newPassword []byte) error
}

// AuthConfig carries the remote function ids of the password-reset workflow.
type AuthConfig struct {
	IdentityCheckFunctionID string
	PasswordResetFunctionID string
}

type authService struct {
	api   authAPI
	store session.Repository
	cfg   AuthConfig
	log   logging.Logger
}

func NewAuthService(api authAPI, store session.Repository, cfg AuthConfig, log logging.Logger) AuthService {
	return &authService{api: api, store: store, cfg: cfg, log: log}
}

// syntheticEmail maps the user-facing identifier onto what the session
// endpoint accepts: real email addresses pass through, phone numbers map to
// a synthetic mailbox.
func syntheticEmail(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return identifier
	}
	return identifier + "@" + emailDomain
}

func (a *authService) SignUp(ctx context.Context, name, phone, registrationID string, password []byte) (*models.User, error) {
	if name == "" || phone == "" || registrationID == "" || len(password) == 0 {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrValidation)
	}

	userID := uuid.NewString()
	email := syntheticEmail(phone)

	if err := a.api.CreateAccount(ctx, userID, email, string(password), name); err != nil {
		return nil, fmt.Errorf("account creation: %w", err)
	}

	// Account creation is only complete once a session exists.
	sess, err := a.api.CreateSession(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("session after sign-up: %w", err)
	}

	if err := a.api.CreateProfile(ctx, userID, name, phone, registrationID); err != nil {
		return nil, fmt.Errorf("profile creation: %w", err)
	}

	user := &models.User{ID: userID, Name: name, Phone: phone, Email: email, RegistrationID: registrationID}
	a.saveSnapshot(ctx, sess.Token, user)
	return user, nil
}

func (a *authService) SignIn(ctx context.Context, identifier string, password []byte) (*models.User, error) {
	if identifier == "" || len(password) == 0 {
		return nil, fmt.Errorf("%w: identifier and password are required", common.ErrValidation)
	}

	sess, err := a.api.CreateSession(ctx, syntheticEmail(identifier), string(password))
	if err != nil {
		return nil, err
	}

	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading account after sign-in: %w", err)
	}

	a.saveSnapshot(ctx, sess.Token, user)
	return user, nil
}

func (a *authService) SignOut(ctx context.Context) error {
	if err := a.api.DeleteSession(ctx); err != nil {
		return err
	}
	if err := a.store.Clear(ctx); err != nil {
		a.log.Warn(ctx, "clearing session snapshot failed", "error", err)
	}
	return nil
}

// Restore loads the persisted snapshot, discards it when the token's expiry
// claim has passed, and re-validates the session against the platform.
func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	snap, err := a.store.Load(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if tokenExpired(snap.Token) {
		a.log.Info(ctx, "stored session expired, discarding")
		a.discardSnapshot(ctx)
		return nil, nil
	}

	a.api.SetSession(snap.Token)

	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			a.api.ClearSession()
			a.discardSnapshot(ctx)
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// tokenExpired inspects the JWT's exp claim without verifying the signature;
// verification is the platform's job, the client only avoids presenting a
// token it already knows is dead. Unparsable tokens count as expired.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(time.Now())
}

type identityCheckRequest struct {
	RegistrationID string `json:"registrationId"`
}

type identityCheckResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type passwordResetRequest struct {
	UserID      string `json:"userId"`
	NewPassword string `json:"newPassword"`
}

type passwordResetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (a *authService) ResetPassword(ctx context.Context, registrationID string, newPassword []byte) error {
	if registrationID == "" || len(newPassword) == 0 {
		return fmt.Errorf("%w: registration id and new password are required", common.ErrValidation)
	}

	var verify identityCheckResponse
	if err := a.api.ExecuteJSON(ctx, a.cfg.IdentityCheckFunctionID, identityCheckRequest{RegistrationID: registrationID}, &verify); err != nil {
		return fmt.Errorf("identity verification: %w", err)
	}
	if !verify.Success {
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, verify.Message)
	}

	var reset passwordResetResponse
	req := passwordResetRequest{UserID: verify.UserID, NewPassword: string(newPassword)}
	if err := a.api.ExecuteJSON(ctx, a.cfg.PasswordResetFunctionID, req, &reset); err != nil {
		return fmt.Errorf("password reset: %w", err)
	}
	if !reset.Success {
		return fmt.Errorf("password reset rejected: %s", reset.Message)
	}
	return nil
}

func (a *authService) saveSnapshot(ctx context.Context, token string, user *models.User) {
	data, err := json.Marshal(user)
	if err != nil {
		a.log.Warn(ctx, "encoding session snapshot failed", "error", err)
		return
	}
	if err := a.store.Save(ctx, token, data); err != nil {
		// A failed snapshot only costs a re-login after restart.
		a.log.Warn(ctx, "saving session snapshot failed", "error", err)
	}
}

func (a *authService) discardSnapshot(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Warn(ctx, "discarding session snapshot failed", "error", err)
	}
}
