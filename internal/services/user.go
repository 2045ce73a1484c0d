package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/inkvoice/inkvoice/internal/database"
	"github.com/inkvoice/inkvoice/internal/models"
)

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates a new user account
func (s *UserService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	if exists, err := s.usernameExists(req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("username already exists")
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO users (username, email, password_hash, display_name, created_at, updated_at, is_active)
		VALUES (:username, :email, :password_hash, :display_name, :created_at, :updated_at, :is_active)
	`

	result, err := s.db.NamedExec(query, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}
	user.ID = int(id)

	return user, nil
}

// AuthenticateUser validates login credentials and returns the user
func (s *UserService) AuthenticateUser(req *models.LoginRequest) (*models.User, error) {
	user, err := s.GetUserByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !user.IsActive || !user.CheckPassword(req.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if _, err := s.db.Exec(`UPDATE users SET last_login_at = ? WHERE id = ?`, now, user.ID); err != nil {
		// Non-fatal, the login itself succeeded
		fmt.Printf("Warning: failed to record last login for user %d: %v\n", user.ID, err)
	}

	return user, nil
}

// GetUserByID fetches a user by primary key
func (s *UserService) GetUserByID(id int) (*models.User, error) {
	var user models.User
	err := s.db.Get(&user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername fetches a user by username
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Get(&user, `SELECT * FROM users WHERE username = ?`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *UserService) usernameExists(username string) (bool, error) {
	var count int
	if err := s.db.Get(&count, `SELECT COUNT(*) FROM users WHERE username = ?`, username); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}
