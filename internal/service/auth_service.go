//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tubefetch/backend/internal/model"
	"tubefetch/backend/internal/repository"
)

const (
	tokenLifetime     = 7 * 24 * time.Hour
	minPasswordLength = 6
)

// User is the public view of an account.
type User struct {
	ID    string
	Email string
	Name  string
}

// AuthResponse carries the session token and the account it belongs to.
type AuthResponse struct {
	Token string
	User  User
}

// AuthService manages accounts and JWT session tokens.
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	// ValidateToken returns the user id encoded in a valid token.
	ValidateToken(token string) (string, error)
	GetUser(ctx context.Context, userID string) (*User, error)
}

type authService struct {
	users  repository.UserRepository
	secret []byte
}

// NewAuthService creates a new auth service. An empty secret gets replaced
// by a random one, which invalidates sessions on restart.
func NewAuthService(users repository.UserRepository, secret string) AuthService {
	if secret == "" {
		buf := make([]byte, 32)
		_, _ = rand.Read(buf)
		secret = hex.EncodeToString(buf)
	}
	return &authService{users: users, secret: []byte(secret)}
}

func (s *authService) Register(ctx context.Context, email, name, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email", ErrInvalid)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrInvalid)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password too short", ErrInvalid)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.respond(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: missing credentials", ErrInvalid)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.respond(*user)
}

func (s *authService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrUnauthorized
	}
	return subject, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return &User{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

func (s *authService) respond(user model.User) (*AuthResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AuthResponse{
		Token: token,
		User:  User{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}
