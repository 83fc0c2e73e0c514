package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/silverharvest/harvest-system/internal/api/middleware"
	"github.com/silverharvest/harvest-system/internal/core/domain"
	"github.com/silverharvest/harvest-system/internal/core/ports"
)

type stubAuthService struct {
	signUpFn func(ctx context.Context, in ports.SignUpInput) (*domain.User, error)
	signInFn func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	return s.signUpFn(ctx, in)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	return s.signInFn(ctx, email, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

const janeSignUp = `{"userId":"u1","firstName":"Jane","lastName":"Doe","email":"jane@x.com","password":"pw123","role":"MANAGER"}`

func TestAuthHandler_SignUp_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
			if in.UserID != "u1" || in.Email != "jane@x.com" || in.Role != "MANAGER" || in.Password != "pw123" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: in.UserID, Email: in.Email, Role: domain.RoleManager}, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", janeSignUp), rec)

	if err := handler.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "User registered successfully!" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if strings.Contains(rec.Body.String(), "pw123") {
		t.Fatalf("response leaks the password")
	}
}

func TestAuthHandler_SignUp_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", janeSignUp), httptest.NewRecorder())

	if err := handler.SignUp(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_SignUp_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", "not-json"), httptest.NewRecorder())
	if code := httpCode(t, handler.SignUp(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}

	c = e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", `{"userId":"u1","email":"not-an-email","password":"x","role":"MANAGER"}`), httptest.NewRecorder())
	err := handler.SignUp(c)
	if code := httpCode(t, err); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if !strings.Contains(err.Error(), "email must be a valid email") {
		t.Fatalf("expected field message, got %v", err)
	}
}

func TestAuthHandler_SignUp_PasswordTooLong(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	body := `{"userId":"u1","email":"jane@x.com","password":"` + strings.Repeat("p", 73) + `","role":"MANAGER"}`
	err := handler.SignUp(e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", body), httptest.NewRecorder()))
	if code := httpCode(t, err); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if !strings.Contains(err.Error(), "password must be at most 72 characters") {
		t.Fatalf("expected length message, got %v", err)
	}
}

func TestAuthHandler_SignUp_TrimsEmailBeforeValidation(t *testing.T) {
	e := newTestEcho()
	var got string
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
			got = in.Email
			return &domain.User{ID: in.UserID}, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	body := `{"userId":"u1","email":"  jane@x.com ","password":"pw123","role":"MANAGER"}`
	rec := httptest.NewRecorder()
	if err := handler.SignUp(e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", body), rec)); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if rec.Code != http.StatusCreated || got != "jane@x.com" {
		t.Fatalf("expected 201 with trimmed email, got %d %q", rec.Code, got)
	}
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "jane@x.com" || password != "pw123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signin", `{"email":"jane@x.com","password":"pw123"}`), rec)

	if err := handler.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token123" || resp.TokenType != "Bearer" || resp.ExpiresIn != 3600 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_SignIn_Errors(t *testing.T) {
	for _, want := range []error{domain.ErrUserNotFound, domain.ErrInvalidCredentials} {
		e := newTestEcho()
		stub := &stubAuthService{
			signInFn: func(ctx context.Context, email, password string) (string, error) {
				return "", want
			},
		}
		handler := NewAuthHandler(stub, time.Hour)

		c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signin", `{"email":"jane@x.com","password":"bad"}`), httptest.NewRecorder())
		if err := handler.SignIn(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, time.Hour)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), rec)
	c.Set(middleware.SubjectKey, "jane@x.com")
	c.Set(middleware.RoleKey, "MANAGER")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp identityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Subject != "jane@x.com" || resp.Role != "MANAGER" {
		t.Fatalf("unexpected identity: %+v", resp)
	}

	bare := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), httptest.NewRecorder())
	if code := httpCode(t, handler.Me(bare)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %d", code)
	}
}
