package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"fintrack-api/internal/entities"
	"fintrack-api/internal/jwt"
	"fintrack-api/internal/repository"
)

// PasswordCost is the bcrypt work factor for stored password hashes.
const PasswordCost = bcrypt.DefaultCost

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateToken(userID int64, email string) (string, error)
}

// AuthResult is a user together with a freshly issued access token.
type AuthResult struct {
	User        *entities.User
	AccessToken string
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID int64) (*entities.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("fintrack-dummy-password"), PasswordCost)
	if err != nil {
		panic(fmt.Sprintf("auth service: generate dummy hash: %v", err))
	}
	return &authService{
		userRepo:  userRepo,
		tokens:    tokens,
		dummyHash: dummy,
	}
}

var _ TokenIssuer = (*jwt.JWTService)(nil)

// Register creates a new user account. Email uniqueness is left to the
// store so concurrent registrations cannot both succeed.
func (s *authService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, name, email, string(hashedPassword))
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailInUse
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login authenticates a user. Unknown email and wrong password return the
// same ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me loads the authenticated user from the store; the token alone is not
// trusted to prove the row still exists.
func (s *authService) Me(ctx context.Context, userID int64) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *authService) issue(user *entities.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: user, AccessToken: token}, nil
}
