package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

// stubBackend plays every microservice at once, recording calls and
// answering from a per-pattern reply table.
type stubBackend struct {
	srv *httptest.Server

	mu      sync.Mutex
	calls   []rpcCall
	replies map[string]models.Envelope
}

type rpcCall struct {
	Pattern string
	Data    interface{}
}

func newStubBackend(t *testing.T) *stubBackend {
	t.Helper()
	sb := &stubBackend{replies: make(map[string]models.Envelope)}

	sb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Pattern string      `json:"pattern"`
			Data    interface{} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		sb.mu.Lock()
		sb.calls = append(sb.calls, rpcCall{Pattern: req.Pattern, Data: req.Data})
		reply, ok := sb.replies[req.Pattern]
		sb.mu.Unlock()

		if !ok {
			reply = models.Envelope{StatusCode: http.StatusOK, Message: "OK"}
		}
		json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(sb.srv.Close)
	return sb
}

func (sb *stubBackend) reply(pattern string, env models.Envelope) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.replies[pattern] = env
}

func (sb *stubBackend) lastCall(t *testing.T) rpcCall {
	t.Helper()
	sb.mu.Lock()
	defer sb.mu.Unlock()
	require.NotEmpty(t, sb.calls)
	return sb.calls[len(sb.calls)-1]
}

func (sb *stubBackend) callCount() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return len(sb.calls)
}

func (sb *stubBackend) serviceConfig(t *testing.T) models.ServiceConfig {
	t.Helper()
	hostPort := strings.TrimPrefix(sb.srv.URL, "http://")
	parts := strings.SplitN(hostPort, ":", 2)
	require.Len(t, parts, 2)
	return models.ServiceConfig{Host: parts[0], Port: parts[1]}
}

func newTestGateway(t *testing.T) (*gin.Engine, *stubBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sb := newStubBackend(t)
	svc := sb.serviceConfig(t)

	cfg := &models.Config{
		AppName:         "CRM API Gateway",
		AppVersion:      "test",
		JWTSecret:       testSecret,
		BasePath:        "/api/v1",
		RPCTimeout:      time.Second,
		UserService:     svc,
		ProfileService:  svc,
		CompanyService:  svc,
		FilesService:    svc,
		SettingsService: svc,
		NewsService:     svc,
		ClientsService:  svc,
	}

	log := logger.NewLogger("error", "text")
	registry := bridge.NewRegistry(cfg, log)

	router := gin.New()
	NewController(cfg, log, registry, nil).RegisterRoutes(router)
	return router, sb
}

func tokenFor(t *testing.T, userID string, roles ...string) string {
	t.Helper()
	refs := make([]models.RoleRef, 0, len(roles))
	for _, r := range roles {
		refs = append(refs, models.RoleRef{Name: r})
	}
	claims := &models.JWTClaims{
		UserID: userID,
		Email:  userID + "@crm.io",
		Roles:  refs,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func perform(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func dataMap(t *testing.T, call rpcCall) map[string]interface{} {
	t.Helper()
	m, ok := call.Data.(map[string]interface{})
	require.True(t, ok, "call data is not an object: %v", call.Data)
	return m
}

func TestLoginForwardsAccountType(t *testing.T) {
	router, sb := newTestGateway(t)

	w := perform(router, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    "admin@crm.io",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	call := sb.lastCall(t)
	assert.Equal(t, "user:login", call.Pattern)
	data := dataMap(t, call)
	assert.Equal(t, "admin@crm.io", data["email"])
	assert.Equal(t, "users", data["type"])
}

func TestRegistrationRelaysCreated(t *testing.T) {
	router, sb := newTestGateway(t)
	sb.reply("user:register", models.Envelope{
		StatusCode: http.StatusCreated,
		Message:    "Created",
		Data:       map[string]interface{}{"id": "u-new"},
	})

	w := perform(router, http.MethodPost, "/api/v1/users/registration", "", map[string]string{
		"email":    "new@crm.io",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var env models.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Created", env.Message)
}

func TestRegistrationRejectsBadBody(t *testing.T) {
	router, sb := newTestGateway(t)

	w := perform(router, http.MethodPost, "/api/v1/users/registration", "", map[string]string{
		"email":    "not-an-email",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, sb.callCount())
}

func TestGuardedRouteRejectsAnonymous(t *testing.T) {
	router, sb := newTestGateway(t)

	w := perform(router, http.MethodGet, "/api/v1/companies/list", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, sb.callCount())
}

func TestManagerScopeRidesOnListCalls(t *testing.T) {
	router, sb := newTestGateway(t)
	token := tokenFor(t, "u42", "Manager")

	w := perform(router, http.MethodGet, "/api/v1/companies/list?page=2&limit=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	call := sb.lastCall(t)
	assert.Equal(t, "company:list", call.Pattern)

	data := dataMap(t, call)
	filter, ok := data["searchFilter"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u42", filter["owner"])

	pagination, ok := data["pagination"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(5), pagination["limit"])
}

func TestAdminScopeIsUnrestricted(t *testing.T) {
	router, sb := newTestGateway(t)
	token := tokenFor(t, "u1", "Admin")

	w := perform(router, http.MethodGet, "/api/v1/deals/list", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, sb.lastCall(t))
	filter, ok := data["searchFilter"].(map[string]interface{})
	require.True(t, ok)
	assert.Empty(t, filter)
}

func TestManagerDeniedAdminRoute(t *testing.T) {
	router, sb := newTestGateway(t)
	token := tokenFor(t, "u42", "Manager")

	w := perform(router, http.MethodPost, "/api/v1/roles/create", token, map[string]string{
		"name": "Support",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, sb.callCount())
}

func TestArchivePayloadShape(t *testing.T) {
	router, sb := newTestGateway(t)
	sb.reply("company:archive", models.Envelope{StatusCode: http.StatusOK, Message: "Archived"})
	token := tokenFor(t, "u1", "Admin")

	w := perform(router, http.MethodDelete, "/api/v1/companies/c77/archive", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	call := sb.lastCall(t)
	assert.Equal(t, "company:archive", call.Pattern)

	data := dataMap(t, call)
	assert.Equal(t, "c77", data["id"])
	assert.Equal(t, "u1", data["userId"])
	assert.Equal(t, false, data["active"])
}

func TestBackendErrorRoundTrip(t *testing.T) {
	router, sb := newTestGateway(t)
	sb.reply("deals:find", models.Envelope{
		StatusCode: http.StatusNotFound,
		Message:    "Deal not found",
		Errors:     []interface{}{"no such deal"},
	})
	token := tokenFor(t, "u1", "Admin")

	w := perform(router, http.MethodGet, "/api/v1/deals/d404/find", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Deal not found", resp.Message)
	assert.Equal(t, []interface{}{"no such deal"}, resp.Errors)
}

func TestInvalidSortRejectedBeforeForwarding(t *testing.T) {
	router, sb := newTestGateway(t)
	token := tokenFor(t, "u1", "Admin")

	w := perform(router, http.MethodGet, "/api/v1/clients/list?sort=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, sb.callCount())
}

func TestDealStatusChangeUsesPathParams(t *testing.T) {
	router, sb := newTestGateway(t)
	token := tokenFor(t, "u42", "Manager")

	w := perform(router, http.MethodPatch, "/api/v1/deals/d1/status/s2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	call := sb.lastCall(t)
	assert.Equal(t, "deals:change:status", call.Pattern)

	data := dataMap(t, call)
	assert.Equal(t, "d1", data["id"])
	assert.Equal(t, "s2", data["status"])
	assert.Equal(t, "u42", data["userId"])
}

func TestSettingsAreAdminOnly(t *testing.T) {
	router, sb := newTestGateway(t)

	manager := tokenFor(t, "u42", "Manager")
	w := perform(router, http.MethodGet, "/api/v1/settings/list", manager, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, sb.callCount())

	admin := tokenFor(t, "u1", "Admin")
	w = perform(router, http.MethodGet, "/api/v1/settings/list", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "setting:list", sb.lastCall(t).Pattern)
}

func TestCarCreateBindsCompanyAndOwner(t *testing.T) {
	router, sb := newTestGateway(t)
	sb.reply("cars:create", models.Envelope{StatusCode: http.StatusCreated, Message: "Created"})
	token := tokenFor(t, "u42", "Manager")

	w := perform(router, http.MethodPost, "/api/v1/cars/create/comp1", token, map[string]interface{}{
		"model": map[string]string{"tractor": "MAN", "semitrailer": "ATLANT"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	call := sb.lastCall(t)
	assert.Equal(t, "cars:create", call.Pattern)

	data := dataMap(t, call)
	assert.Equal(t, "comp1", data["company"])
	assert.Equal(t, "u42", data["owner"])
}

func TestCarCreateHonorsOwnerOverride(t *testing.T) {
	router, sb := newTestGateway(t)
	sb.reply("cars:create", models.Envelope{StatusCode: http.StatusCreated, Message: "Created"})
	token := tokenFor(t, "u42", "Manager")

	w := perform(router, http.MethodPost, "/api/v1/cars/create/comp1?owner=u7", token, map[string]interface{}{})
	require.Equal(t, http.StatusCreated, w.Code)

	data := dataMap(t, sb.lastCall(t))
	assert.Equal(t, "u7", data["owner"])
}

func TestCarStatusToggleUsesQuery(t *testing.T) {
	router, sb := newTestGateway(t)
	token := tokenFor(t, "u1", "Admin")

	w := perform(router, http.MethodDelete, "/api/v1/cars/car9/status?active=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	call := sb.lastCall(t)
	assert.Equal(t, "cars:archive", call.Pattern)

	data := dataMap(t, call)
	assert.Equal(t, "car9", data["id"])
	assert.Equal(t, true, data["active"])
}

func TestParkCreateShapesNestedPayload(t *testing.T) {
	router, sb := newTestGateway(t)
	sb.reply("park:create", models.Envelope{StatusCode: http.StatusCreated, Message: "Created"})
	token := tokenFor(t, "u42", "Manager")

	w := perform(router, http.MethodPost, "/api/v1/park/create/comp1", token, map[string]interface{}{
		"store": map[string]interface{}{
			"main": map[string]interface{}{"name": "Storage #1"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	call := sb.lastCall(t)
	assert.Equal(t, "park:create", call.Pattern)

	data := dataMap(t, call)
	assert.Equal(t, "comp1", data["cid"])

	parkData, ok := data["parkData"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "comp1", parkData["company"])
	assert.Equal(t, "park", parkData["object"])
	assert.Equal(t, "u42", parkData["author"])
	assert.Equal(t, "u42", parkData["owner"])
}

func TestParkStoreRoutesCarryPathParams(t *testing.T) {
	router, sb := newTestGateway(t)
	token := tokenFor(t, "u1", "Admin")

	w := perform(router, http.MethodPatch, "/api/v1/park/add/store/p1", token, map[string]interface{}{
		"name": "Storage #2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	call := sb.lastCall(t)
	assert.Equal(t, "park:store:create", call.Pattern)
	data := dataMap(t, call)
	assert.Equal(t, "p1", data["parkId"])

	w = perform(router, http.MethodDelete, "/api/v1/park/delete/p1/store/s2/fuel/f3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	call = sb.lastCall(t)
	assert.Equal(t, "park:fuel:delete", call.Pattern)
	data = dataMap(t, call)
	assert.Equal(t, "p1", data["parkId"])
	assert.Equal(t, "s2", data["storeId"])
	assert.Equal(t, "f3", data["fuelId"])
}

func TestFilesListRouteIsGuarded(t *testing.T) {
	router, sb := newTestGateway(t)

	w := perform(router, http.MethodGet, "/api/v1/files", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, sb.callCount())

	token := tokenFor(t, "u42", "Manager")
	w = perform(router, http.MethodGet, "/api/v1/files", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "files:list", sb.lastCall(t).Pattern)
}

func TestHealthWithoutMonitor(t *testing.T) {
	router, _ := newTestGateway(t)

	w := perform(router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}
