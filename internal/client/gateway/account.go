package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/batorigb/kinotv/internal/client/models"
	"github.com/batorigb/kinotv/internal/common"
)

// accountDoc mirrors the platform account object.
type accountDoc struct {
	ID    string `json:"$id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// profileDoc mirrors the secondary profile document written at sign-up,
// keyed by the account id.
type profileDoc struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	RegistrationID string `json:"registrationId"`
}

// Session is the platform's session grant. Token is a JWT; the client stores
// it for restarts and inspects its expiry claim without verifying the
// signature (verification is the platform's job).
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type createAccountRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAccount registers a new account under the given client-generated id.
// It does not establish a session; the auth service chains the two because an
// account without a session is not considered usable.
func (c *Client) CreateAccount(ctx context.Context, userID, email, password, name string) error {
	req := createAccountRequest{UserID: userID, Email: email, Password: password, Name: name}
	if err := c.do(ctx, http.MethodPost, "/v1/account", nil, req, nil); err != nil {
		c.log.Error(ctx, "account creation failed", "error", err)
		return err
	}
	return nil
}

// CreateSession authenticates with identifier+secret and installs the
// returned token on the client. Invalid credentials surface as
// common.ErrUnauthorized.
func (c *Client) CreateSession(ctx context.Context, email, password string) (Session, error) {
	var s Session
	req := createSessionRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/v1/account/sessions", nil, req, &s); err != nil {
		return Session{}, err
	}
	if s.Token == "" {
		return Session{}, &ParseError{Path: "/v1/account/sessions", Err: errors.New("session token missing")}
	}
	c.SetSession(s.Token)
	return s, nil
}

// CurrentUser fetches the account for the installed session, joined with the
// profile document. A missing profile is tolerated: the account fields alone
// still identify the user.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var acc accountDoc
	if err := c.do(ctx, http.MethodGet, "/v1/account", nil, nil, &acc); err != nil {
		return nil, err
	}

	user := &models.User{ID: acc.ID, Name: acc.Name, Email: acc.Email}

	var profile profileDoc
	err := c.getDocument(ctx, c.cfg.UsersCollectionID, acc.ID, &profile)
	switch {
	case err == nil:
		user.Phone = profile.Phone
		user.RegistrationID = profile.RegistrationID
	case errors.Is(err, common.ErrNotFound):
		// pre-profile account, nothing to join
	default:
		c.log.Error(ctx, "profile fetch failed", "userId", acc.ID, "error", err)
		return nil, err
	}
	return user, nil
}

// CreateProfile writes the secondary profile record for a freshly created
// account, keyed by the account id.
func (c *Client) CreateProfile(ctx context.Context, userID string, name, phone, registrationID string) error {
	data := profileDoc{Name: name, Phone: phone, RegistrationID: registrationID}
	if err := c.createDocument(ctx, c.cfg.UsersCollectionID, userID, data, nil); err != nil {
		c.log.Error(ctx, "profile creation failed", "userId", userID, "error", err)
		return err
	}
	return nil
}

// DeleteSession ends the current session on the platform and clears the
// local token. Failures surface to the caller instead of being swallowed.
func (c *Client) DeleteSession(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/v1/account/sessions/current", nil, nil, nil); err != nil {
		c.log.Error(ctx, "session deletion failed", "error", err)
		return err
	}
	c.ClearSession()
	return nil
}
