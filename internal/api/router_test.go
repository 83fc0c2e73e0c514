package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/silverharvest/harvest-system/internal/core/authz"
	"github.com/silverharvest/harvest-system/internal/core/domain"
	"github.com/silverharvest/harvest-system/internal/core/service"
	"github.com/silverharvest/harvest-system/internal/infrastructure/db/memory"
	"github.com/silverharvest/harvest-system/pkg/password"
	"github.com/silverharvest/harvest-system/pkg/token"
)

func newTestRouter(t *testing.T, gate *authz.Gate) *echo.Echo {
	t.Helper()
	tokens, err := token.NewService(token.NewSecret("MySecretKeyForJWTGeneration"))
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	store := memory.NewStore()
	log := zerolog.Nop()
	reg := prometheus.NewRegistry()

	return NewRouter(Dependencies{
		Logger:     log,
		Tokens:     tokens,
		Gate:       gate,
		Auth:       service.NewAuthService(store.Users(), password.NewHasher(bcrypt.MinCost), tokens, log),
		Equipment:  service.NewEquipmentService(store.Equipment(), nil, log),
		Vehicles:   service.NewVehicleService(store.Vehicles(), nil, log),
		Registerer: reg,
		Gatherer:   reg,
	})
}

func do(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signUpAndIn(t *testing.T, e *echo.Echo, id, email, role string) string {
	t.Helper()
	body := `{"userId":"` + id + `","firstName":"Jane","lastName":"Doe","email":"` + email + `","password":"pw123","role":"` + role + `"}`
	if rec := do(e, http.MethodPost, "/auth/signup", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := do(e, http.MethodPost, "/auth/signin", `{"email":"`+email+`","password":"pw123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("signin: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("signin: no token in %s", rec.Body.String())
	}
	return resp.Token
}

func TestRouter_ManagerFlow(t *testing.T) {
	e := newTestRouter(t, nil)
	tok := signUpAndIn(t, e, "u1", "jane@x.com", "MANAGER")

	rec := do(e, http.MethodGet, "/auth/me", "", tok)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"role":"MANAGER"`) {
		t.Fatalf("me: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/api/v1/equipment/save", `{"equipmentId":"EQ-001","name":"Tractor","type":"Heavy"}`, tok)
	if rec.Code != http.StatusCreated {
		t.Fatalf("equipment save: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodPut, "/api/v1/equipment/EQ-001", `{"name":"Tractor","type":"Heavy","status":"Maintenance"}`, tok)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"Maintenance"`) {
		t.Fatalf("equipment update: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/api/v1/equipment", "", tok)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "EQ-001") {
		t.Fatalf("equipment list: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/api/v1/vehicle/save", `{"vehicleCode":"V-1","licensePlateNumber":"ABC-123","vehicleCategory":"Truck","fuelType":"Diesel"}`, tok)
	if rec.Code != http.StatusCreated {
		t.Fatalf("vehicle save: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/api/v1/vehicle/getAll", "", tok)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "V-1") {
		t.Fatalf("vehicle list: got %d %s", rec.Code, rec.Body.String())
	}

	if rec = do(e, http.MethodDelete, "/api/v1/equipment/EQ-001", "", tok); rec.Code != http.StatusNoContent {
		t.Fatalf("equipment delete: expected 204, got %d", rec.Code)
	}
	if rec = do(e, http.MethodGet, "/api/v1/equipment/EQ-001", "", tok); rec.Code != http.StatusNotFound {
		t.Fatalf("deleted equipment: expected 404, got %d", rec.Code)
	}
}

func TestRouter_ManagerDeniedOnOtherOnlyOperation(t *testing.T) {
	policy := authz.DefaultPolicy()
	policy[authz.VehicleDelete] = authz.NewRoleSet(domain.RoleOther)
	e := newTestRouter(t, authz.NewGate(policy))

	tok := signUpAndIn(t, e, "u1", "jane@x.com", "MANAGER")

	if rec := do(e, http.MethodPost, "/api/v1/equipment/save", `{"name":"Tractor","type":"Heavy"}`, tok); rec.Code != http.StatusCreated {
		t.Fatalf("equipment save: expected 201, got %d", rec.Code)
	}
	rec := do(e, http.MethodDelete, "/api/v1/vehicle/delete/V-1", "", tok)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("OTHER-only op: expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"access forbidden"`) {
		t.Fatalf("expected central error envelope, got %s", rec.Body.String())
	}
}

func TestRouter_DuplicatePlate(t *testing.T) {
	e := newTestRouter(t, nil)
	tok := signUpAndIn(t, e, "u1", "jane@x.com", "MANAGER")

	save := func(code, plate string) int {
		body := `{"vehicleCode":"` + code + `","licensePlateNumber":"` + plate + `","vehicleCategory":"Truck","fuelType":"Diesel"}`
		return do(e, http.MethodPost, "/api/v1/vehicle/save", body, tok).Code
	}
	if code := save("V-1", "ABC-123"); code != http.StatusCreated {
		t.Fatalf("first save: expected 201, got %d", code)
	}
	if code := save("V-2", "XYZ-789"); code != http.StatusCreated {
		t.Fatalf("second save: expected 201, got %d", code)
	}
	if code := save("V-3", "ABC-123"); code != http.StatusConflict {
		t.Fatalf("reused plate: expected 409, got %d", code)
	}

	rec := do(e, http.MethodPut, "/api/v1/vehicle/update/V-2", `{"licensePlateNumber":"ABC-123","vehicleCategory":"Truck","fuelType":"Diesel"}`, tok)
	if rec.Code != http.StatusConflict {
		t.Fatalf("update onto taken plate: expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_SignUpTrimsEmail(t *testing.T) {
	e := newTestRouter(t, nil)
	body := `{"userId":"u1","email":" Jane@X.com ","password":"pw123","role":"MANAGER"}`
	if rec := do(e, http.MethodPost, "/auth/signup", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(e, http.MethodPost, "/auth/signin", `{"email":"jane@x.com","password":"pw123"}`, ""); rec.Code != http.StatusOK {
		t.Fatalf("signin: expected 200, got %d", rec.Code)
	}
}

func TestRouter_RoleGating(t *testing.T) {
	e := newTestRouter(t, nil)
	other := signUpAndIn(t, e, "u2", "driver@x.com", "OTHER")
	scientist := signUpAndIn(t, e, "u3", "sam@x.com", "SCIENTIST")

	if rec := do(e, http.MethodGet, "/api/v1/equipment", "", other); rec.Code != http.StatusForbidden {
		t.Fatalf("OTHER on equipment: expected 403, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/api/v1/vehicle/getAll", "", other); rec.Code != http.StatusOK {
		t.Fatalf("OTHER on vehicles: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/api/v1/equipment", "", scientist); rec.Code != http.StatusOK {
		t.Fatalf("SCIENTIST on equipment: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/api/v1/vehicle/getAll", "", scientist); rec.Code != http.StatusForbidden {
		t.Fatalf("SCIENTIST on vehicles: expected 403, got %d", rec.Code)
	}
}

func TestRouter_AuthErrors(t *testing.T) {
	e := newTestRouter(t, nil)
	_ = signUpAndIn(t, e, "u1", "jane@x.com", "MANAGER")

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		bearer string
		code   int
	}{
		{"duplicate email", http.MethodPost, "/auth/signup", `{"userId":"u9","email":"jane@x.com","password":"x","role":"OTHER"}`, "", http.StatusConflict},
		{"password too long", http.MethodPost, "/auth/signup", `{"userId":"u9","email":"long@x.com","password":"` + strings.Repeat("p", 73) + `","role":"OTHER"}`, "", http.StatusUnprocessableEntity},
		{"invalid role", http.MethodPost, "/auth/signup", `{"userId":"u9","email":"new@x.com","password":"x","role":"ADMIN"}`, "", http.StatusBadRequest},
		{"wrong password", http.MethodPost, "/auth/signin", `{"email":"jane@x.com","password":"nope"}`, "", http.StatusUnauthorized},
		{"unknown email", http.MethodPost, "/auth/signin", `{"email":"ghost@x.com","password":"pw123"}`, "", http.StatusNotFound},
		{"no token", http.MethodGet, "/api/v1/equipment", "", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/v1/equipment", "", "garbage", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		rec := do(e, tc.method, tc.path, tc.body, tc.bearer)
		if rec.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d: %s", tc.name, tc.code, rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"error"`) {
			t.Fatalf("%s: expected error envelope, got %s", tc.name, rec.Body.String())
		}
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	e := newTestRouter(t, nil)

	if rec := do(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}

	_ = do(e, http.MethodGet, "/health", "", "")
	rec := do(e, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "harvest_requests_total") {
		t.Fatalf("metrics: got %d", rec.Code)
	}
}
