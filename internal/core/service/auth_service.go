package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/core/ports"
)

const (
	defaultTokenTTL = 7 * 24 * time.Hour
	bcryptCost      = 10

	minPasswordLength = 8
	// bcrypt only accepts inputs up to 72 bytes.
	maxPasswordBytes = 72
)

// dummyHash is compared against when the email is unknown so that both
// login failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tabaum-dummy-password"), bcryptCost)

// Claims is the JWT payload issued on register and login.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and token verification.
type AuthService struct {
	repo      ports.UserRepository
	audit     ports.AuthEventRecorder
	jwtSecret []byte
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	repo ports.UserRepository,
	audit ports.AuthEventRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:      repo,
		audit:     audit,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Register creates a credential record and issues a token for it.
// Field format rules are enforced by the transport validator; the service
// only re-checks what survives normalisation.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	switch {
	case email == "":
		return nil, domain.NewValidationError("O e-mail é obrigatório.")
	case utf8.RuneCountInString(in.Password) < minPasswordLength:
		return nil, domain.NewValidationError("A senha deve ter pelo menos 8 caracteres.")
	case len(in.Password) > maxPasswordBytes:
		return nil, domain.NewValidationError("A senha deve ter no máximo 72 bytes.")
	case name == "":
		return nil, domain.NewValidationError("O nome é obrigatório.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		s.record(domain.AuthEventRegister, email, in.IP, err)
		return nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuthEventRegister, email, in.IP, nil)
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login checks the credentials. Unknown email and wrong password both
// yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.NewValidationError("E-mail e senha são obrigatórios.")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		s.record(domain.AuthEventLogin, email, in.IP, domain.ErrUserNotFound)
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		s.record(domain.AuthEventLogin, email, in.IP, domain.ErrInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuthEventLogin, email, in.IP, nil)
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Me returns the account a verified token refers to.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// VerifyToken satisfies ports.TokenVerifier.
func (s *AuthService) VerifyToken(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.UserID, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

func (s *AuthService) record(kind domain.AuthEventKind, email, ip string, err error) {
	if s.audit == nil {
		return
	}
	ev := domain.AuthEvent{
		Kind:    kind,
		Email:   email,
		Success: err == nil,
		IP:      ip,
		At:      s.now().UTC(),
	}
	if err != nil {
		ev.Reason = err.Error()
	}
	s.audit.Record(ev)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
