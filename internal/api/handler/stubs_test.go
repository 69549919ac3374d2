package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medilink/directory/internal/core/domain"
)

var nopLog = zerolog.Nop()

type stubSessionService struct {
	loginFn   func(ctx context.Context, identifier, secret string) (*domain.Session, error)
	logoutFn  func(ctx context.Context) error
	currentFn func(ctx context.Context) (*domain.Session, error)
	adoptFn   func(ctx context.Context, claims domain.ProviderClaims) (*domain.Session, error)
}

func (s *stubSessionService) Login(ctx context.Context, identifier, secret string) (*domain.Session, error) {
	return s.loginFn(ctx, identifier, secret)
}

func (s *stubSessionService) Logout(ctx context.Context) error {
	return s.logoutFn(ctx)
}

func (s *stubSessionService) CurrentSession(ctx context.Context) (*domain.Session, error) {
	return s.currentFn(ctx)
}

func (s *stubSessionService) AdoptExternalIdentity(ctx context.Context, claims domain.ProviderClaims) (*domain.Session, error) {
	return s.adoptFn(ctx, claims)
}

type stubCredentialService struct {
	changeFn   func(ctx context.Context, identifier, currentSecret, newSecret string) (bool, error)
	registerFn func(ctx context.Context, profile domain.DoctorProfile, cred domain.DoctorCredential) error
}

func (s *stubCredentialService) ChangeDoctorSecret(ctx context.Context, identifier, currentSecret, newSecret string) (bool, error) {
	return s.changeFn(ctx, identifier, currentSecret, newSecret)
}

func (s *stubCredentialService) RegisterDoctor(ctx context.Context, profile domain.DoctorProfile, cred domain.DoctorCredential) error {
	return s.registerFn(ctx, profile, cred)
}

// newContext builds an echo.Context with the validator installed, as the
// router does.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func doctorSession() *domain.Session {
	return &domain.Session{
		ID:             "sess-1",
		SubjectID:      "7",
		DisplayName:    "A",
		Email:          "d@x.com",
		Role:           domain.RoleDoctor,
		RoleSpecificID: "7",
	}
}
