package service

import (
	"errors"

	"canvaspad/internal/auth/model"
	"canvaspad/internal/auth/repository"
	"canvaspad/pkg/apperr"
	"canvaspad/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the credential service: account creation, credential
// checking, and session token issuance/verification.
type AuthService struct {
	Repo   *repository.AuthRepository
	Tokens *TokenManager
}

func NewAuthService(repo *repository.AuthRepository, tokens *TokenManager) *AuthService {
	return &AuthService{Repo: repo, Tokens: tokens}
}

// CreateIdentity registers a new account. The companion profile record is a
// best-effort side effect: if that insert fails, signup still succeeds and
// the profile is repaired lazily on the next authenticated read.
func (s *AuthService) CreateIdentity(email, password string) (*model.User, error) {
	if err := (model.SignupRequest{Email: email, Password: password}).Validate(); err != nil {
		return nil, &apperr.ValidationError{Message: err.Error()}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.CreateUser(uuid.NewString(), email, string(hash))
	if err != nil {
		return nil, err
	}

	if err := s.Repo.CreateProfile(user.ID, user.Email); err != nil {
		logger.Sugar.Warnf("Profile creation for user %s deferred to lazy repair: %v", user.ID, err)
	}
	return user, nil
}

// Authenticate checks credentials against the identity store. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(email, password string) (*model.User, error) {
	user, hash, err := s.Repo.GetUserByEmail(email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, apperr.ErrBadCredentials
	}
	return user, nil
}

// CurrentUser loads the authenticated user and enforces the
// profile-existence invariant: a missing companion profile is created on
// demand before the user is returned.
func (s *AuthService) CurrentUser(userID string) (*model.User, error) {
	user, err := s.Repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.Repo.ProfileExists(user.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := s.Repo.CreateProfile(user.ID, user.Email); err != nil {
			return nil, apperr.ErrNotFound
		}
		logger.Sugar.Infof("Repaired missing profile for user %s", user.ID)
	}
	return user, nil
}

// IssueToken mints a session token for the identity.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	return s.Tokens.Issue(user)
}
