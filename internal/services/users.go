// Package services contains the business logic shared by the web server and
// the inventory CLI. This file implements UserService: registration, login
// and session token verification.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/solidarias/internal/auth"
	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/dmitrijs2005/solidarias/internal/repositories/repomanager"
	"github.com/dmitrijs2005/solidarias/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

// Registration is the form submitted by a new user.
type Registration struct {
	UserName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// UserService provides authentication-related operations:
// - Register: validate and create users
// - Login: verify credentials and mint a session token
// - Authenticate: resolve a session token to a user id
type UserService struct {
	db                      *sql.DB
	repomanager             repomanager.RepositoryManager
	jwtSecret               []byte
	sessionValidityDuration time.Duration
	bcryptCost              int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                      db,
		repomanager:             m,
		jwtSecret:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionValidityDuration,
		bcryptCost:              bcrypt.DefaultCost,
	}
}

// Register validates r and creates the user. Checks run in a fixed order and
// the first failure is returned: missing fields (common.ErrorValidation),
// password confirmation (common.ErrorPasswordMismatch), username taken
// (common.ErrorUserNameTaken), email taken (common.ErrorEmailTaken).
// A successful registration does not log the user in.
func (s *UserService) Register(ctx context.Context, r Registration) (*models.User, error) {
	userName := strings.TrimSpace(r.UserName)
	email := strings.TrimSpace(r.Email)

	if userName == "" || email == "" || r.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrorValidation)
	}
	if err := checkLen("username", userName, models.MaxUserNameLen); err != nil {
		return nil, err
	}
	if err := checkLen("email", email, models.MaxEmailLen); err != nil {
		return nil, err
	}
	if r.Password != r.ConfirmPassword {
		return nil, common.ErrorPasswordMismatch
	}

	repo := s.repomanager.Users(s.db)

	if err := s.checkFree(ctx, repo.GetByUserName, userName, common.ErrorUserNameTaken); err != nil {
		return nil, err
	}
	if err := s.checkFree(ctx, repo.GetByEmail, email, common.ErrorEmailTaken); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	u, err := repo.Create(ctx, &models.User{UserName: userName, PasswordHash: string(hash), Email: email})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			// Lost a race with a concurrent registration; report which
			// value is now taken.
			return nil, s.takenError(ctx, userName)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and returns a signed session token. An
// unknown user and a wrong password both cost one bcrypt comparison and both
// yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, *models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUserName(ctx, strings.TrimSpace(userName))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.getDummyHash(), []byte(password))
			return "", nil, common.ErrorInvalidCredentials
		}
		return "", nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.sessionValidityDuration)
	if err != nil {
		return "", nil, fmt.Errorf("%w: sign session: %v", common.ErrorInternal, err)
	}
	return token, user, nil
}

// Authenticate returns the user id carried by a session token, or
// common.ErrorUnauthorized when the token is missing, invalid or expired.
func (s *UserService) Authenticate(token string) (int64, error) {
	if token == "" {
		return 0, common.ErrorUnauthorized
	}
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}
	return id, nil
}

// GetUser returns the user with the given id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// SessionValidity is how long a token from Login stays valid.
func (s *UserService) SessionValidity() time.Duration {
	return s.sessionValidityDuration
}

// --- helpers below ---

func (s *UserService) checkFree(ctx context.Context, lookup func(context.Context, string) (*models.User, error), value string, taken error) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, common.ErrorNotFound):
		return nil
	default:
		return fmt.Errorf("error checking user: %w", err)
	}
}

func (s *UserService) takenError(ctx context.Context, userName string) error {
	if _, err := s.repomanager.Users(s.db).GetByUserName(ctx, userName); err == nil {
		return common.ErrorUserNameTaken
	}
	return common.ErrorEmailTaken
}

func (s *UserService) getDummyHash() []byte {
	s.dummyOnce.Do(func() {
		// Any fixed password works; only the cost has to match real hashes.
		h, err := bcrypt.GenerateFromPassword([]byte("solidarias-dummy-password"), s.bcryptCost)
		if err != nil {
			panic(err)
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
