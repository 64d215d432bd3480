package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"docuverify/internal/common"
	"docuverify/internal/common/security"
	"docuverify/internal/domain/model"
	"docuverify/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// emailRe accepts the standard local@domain shape.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService is the credential store: it registers citizens and verifies
// login credentials, issuing a signed token on success.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenIssuer
	log      zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenIssuer, baseLogger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      baseLogger.With().Str("component", "auth_service").Logger(),
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a Citizen account. The validation order is fixed: name,
// email presence, email format, password presence, password length, email
// uniqueness. There is no path to create an admin here; admins are seeded
// out-of-band (cmd/seed).
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, common.E(common.KindNameRequired, "Please enter your name.")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, common.E(common.KindEmailRequired, "Email is required.")
	}
	if !emailRe.MatchString(req.Email) {
		return nil, common.E(common.KindEmailInvalid, "Email format is invalid.")
	}
	if req.Password == "" {
		return nil, common.E(common.KindPasswordRequired, "Password is required.")
	}
	if len(req.Password) < 6 {
		return nil, common.E(common.KindPasswordTooShort, "Password must be at least 6 characters long.")
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           model.RoleCitizen, // Registration never creates admins
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo tags duplicate emails as EMAIL_EXISTS
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	user.HashedPassword = ""
	return user, nil
}

// Login verifies credentials and issues a token. A missing user and a wrong
// password both surface as INVALID_CREDENTIALS so callers cannot enumerate
// registered emails.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, common.E(common.KindEmailRequired, "Email is required.")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, common.E(common.KindPasswordRequired, "Password is required.")
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if common.KindOf(err) == common.KindNotFound {
			return nil, common.E(common.KindInvalidCreds, "Invalid email or password.")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.E(common.KindInvalidCreds, "Invalid email or password.")
	}

	token, err := s.tokens.IssueToken(model.Principal{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.HashedPassword = ""
	return &AuthResult{User: user, Token: token}, nil
}
