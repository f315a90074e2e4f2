package services

import (
	"errors"
	"time"

	"restaurant_orders/internal/apperrors"
	"restaurant_orders/internal/models"
	"restaurant_orders/internal/redis"
	"restaurant_orders/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized covers bad credentials and missing/expired sessions.
// Handlers map it to 401.
var ErrUnauthorized = errors.New("unauthorized")

// SessionStore is the slice of the redis client the auth gate needs.
// Satisfied by *redis.Client.
type SessionStore interface {
	SetSession(token string, session *redis.Session, ttl time.Duration) error
	GetSession(token string) (*redis.Session, error)
	DeleteSession(token string) error
}

// AuthService guards catalog administration. Order and kitchen operations
// never pass through it.
type AuthService interface {
	CreateUser(username, password string, role models.UserRole) (*models.User, error)
	Login(username, password string) (string, *models.User, error)
	Authenticate(token string) (*redis.Session, error)
	Logout(token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sessions SessionStore, sessionTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) CreateUser(username, password string, role models.UserRole) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.Validation("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         string(role),
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the password and issues a bearer token backed by a redis
// session. Unknown user and wrong password are indistinguishable to the
// caller.
func (s *authService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, ErrUnauthorized
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrUnauthorized
	}

	token := uuid.NewString()
	session := &redis.Session{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.SetSession(token, session, s.sessionTTL); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) Authenticate(token string) (*redis.Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	session, err := s.sessions.GetSession(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return session, nil
}

func (s *authService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(token)
}
