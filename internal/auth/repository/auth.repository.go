package repository

import (
	"database/sql"
	"errors"

	"canvaspad/internal/auth/model"
	"canvaspad/pkg/apperr"
	"canvaspad/pkg/logger"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// AuthRepository is the adapter over the backing identity store: the users
// table (credentials) and the companion profiles table.
type AuthRepository struct {
	DB *sql.DB
}

func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{DB: db}
}

func (r *AuthRepository) CreateUser(id, email, passwordHash string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRow(`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, NOW())
		RETURNING id, email, created_at`,
		id, email, passwordHash,
	).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, apperr.ErrConflict
		}
		logger.Sugar.Errorf("Failed to create user %s: %v", email, err)
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail returns the user and its password hash for credential
// checking.
func (r *AuthRepository) GetUserByEmail(email string) (*model.User, string, error) {
	var u model.User
	var hash string
	err := r.DB.QueryRow(`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &hash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", apperr.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get user by email %s: %v", email, err)
		return nil, "", err
	}
	return &u, hash, nil
}

func (r *AuthRepository) GetUserByID(id string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRow(`SELECT id, email, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get user %s: %v", id, err)
		return nil, err
	}
	return &u, nil
}

// CreateProfile inserts the companion profile record. The upsert makes it
// safe to call both at signup and from the lazy repair path.
func (r *AuthRepository) CreateProfile(userID, email string) error {
	_, err := r.DB.Exec(`INSERT INTO profiles (user_id, email, created_at) VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO NOTHING`, userID, email)
	if err != nil {
		logger.Sugar.Errorf("Failed to create profile for user %s: %v", userID, err)
	}
	return err
}

func (r *AuthRepository) ProfileExists(userID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		logger.Sugar.Errorf("Failed to check profile for user %s: %v", userID, err)
		return false, err
	}
	return exists, nil
}
