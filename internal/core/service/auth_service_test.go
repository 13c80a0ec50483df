package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/core/ports"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("u-%d", r.nextID)
	r.byEmail[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubRecorder struct {
	events []domain.AuthEvent
}

func (r *stubRecorder) Record(ev domain.AuthEvent) {
	r.events = append(r.events, ev)
}

func newAuthSvc(repo *stubUserRepo, rec *stubRecorder) *AuthService {
	return NewAuthService(repo, rec, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	rec := &stubRecorder{}
	svc := newAuthSvc(repo, rec)

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "  Alice@Example.com ", Password: "pass1234", Name: " Alice Lima ", IP: "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}
	if res.User.Email != "alice@example.com" || res.User.Name != "Alice Lima" {
		t.Fatalf("expected normalised user, got %+v", res.User)
	}
	if res.User.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(rec.events) != 1 || !rec.events[0].Success || rec.events[0].Kind != domain.AuthEventRegister {
		t.Fatalf("expected one successful register event, got %+v", rec.events)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubRecorder{})

	cases := []struct {
		in   ports.RegisterInput
		want string
	}{
		{ports.RegisterInput{Email: "  ", Password: "pass1234", Name: "Bob"}, "O e-mail é obrigatório."},
		{ports.RegisterInput{Email: "bob@example.com", Password: "short", Name: "Bob"}, "A senha deve ter pelo menos 8 caracteres."},
		{ports.RegisterInput{Email: "bob@example.com", Password: "pass1234", Name: "   "}, "O nome é obrigatório."},
		{ports.RegisterInput{Email: "bob@example.com", Password: strings.Repeat("a", 80), Name: "Bob"}, "A senha deve ter no máximo 72 bytes."},
		{ports.RegisterInput{Email: "bob@example.com", Password: strings.Repeat("é", 40), Name: "Bob"}, "A senha deve ter no máximo 72 bytes."},
	}
	for _, tc := range cases {
		_, err := svc.Register(context.Background(), tc.in)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation for %+v, got %v", tc.in, err)
		}
		if err.Error() != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, err.Error())
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, &stubRecorder{})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "bob@example.com", Password: "pass1234", Name: "Bob"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "BOB@example.com", Password: "other5678", Name: "Bobby"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected a single credential record, got %d", len(repo.byEmail))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, &stubRecorder{})

	reg, err := svc.Register(context.Background(), ports.RegisterInput{Email: "carol@example.com", Password: "s3cret-pass", Name: "Carol"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), ports.LoginInput{Email: "carol@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.ID != reg.User.ID {
		t.Fatalf("unexpected user: %+v", res.User)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.UserID != reg.User.ID || claims.Email != "carol@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Sub(claims.IssuedAt.Time) != time.Hour {
		t.Fatalf("expected one hour ttl, got %+v", claims.RegisteredClaims)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	rec := &stubRecorder{}
	svc := newAuthSvc(repo, rec)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "dave@example.com", Password: "goodpass", Name: "Dave"})

	_, wrongPass := svc.Login(context.Background(), ports.LoginInput{Email: "dave@example.com", Password: "badpass1"})
	_, unknown := svc.Login(context.Background(), ports.LoginInput{Email: "ghost@example.com", Password: "badpass1"})

	if wrongPass != domain.ErrInvalidCredentials || unknown != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials twice, got %v / %v", wrongPass, unknown)
	}

	// register + two failed logins
	if len(rec.events) != 3 || rec.events[1].Success || rec.events[2].Success {
		t.Fatalf("unexpected audit events: %+v", rec.events)
	}
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection reset")
	svc := newAuthSvc(repo, &stubRecorder{})

	_, err := svc.Login(context.Background(), ports.LoginInput{Email: "eve@example.com", Password: "whatever1"})
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected raw repository error, got %v", err)
	}
}

func TestAuthService_VerifyToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, &stubRecorder{})

	res, err := svc.Register(context.Background(), ports.RegisterInput{Email: "fay@example.com", Password: "pass1234", Name: "Fay"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	id, err := svc.VerifyToken(res.Token)
	if err != nil || id != res.User.ID {
		t.Fatalf("expected %s, got %s (%v)", res.User.ID, id, err)
	}

	other := NewAuthService(repo, nil, "other-secret", time.Hour, zerolog.Nop())
	if _, err := other.VerifyToken(res.Token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.VerifyToken(res.Token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, &stubRecorder{})

	res, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "gus@example.com", Password: "pass1234", Name: "Gus"})
	u, err := svc.Me(context.Background(), res.User.ID)
	if err != nil || u.Email != "gus@example.com" {
		t.Fatalf("unexpected me result: %+v, %v", u, err)
	}

	delete(repo.byEmail, "gus@example.com")
	if _, err := svc.Me(context.Background(), res.User.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Register_PasswordAtByteLimit(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubRecorder{})

	pw := strings.Repeat("a", 72)
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "hal@example.com", Password: pw, Name: "Hal"}); err != nil {
		t.Fatalf("72-byte password should be accepted: %v", err)
	}
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "hal@example.com", Password: pw}); err != nil {
		t.Fatalf("login with 72-byte password failed: %v", err)
	}
}
