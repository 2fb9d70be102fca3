package middelware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims *models.JWTClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func claimsFor(userID, email string, roles ...string) *models.JWTClaims {
	refs := make([]models.RoleRef, 0, len(roles))
	for _, r := range roles {
		refs = append(refs, models.RoleRef{Name: r})
	}
	return &models.JWTClaims{
		UserID: userID,
		Email:  email,
		Roles:  refs,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

type AuthSuite struct {
	suite.Suite
	manager *JWTManager
	router  *gin.Engine
}

func (s *AuthSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &models.Config{JWTSecret: testSecret}
	s.manager = NewJWTManager(cfg, logger.NewLogger("error", "text"), nil)

	s.router = gin.New()
	echo := func(c *gin.Context) {
		user, _ := GetAuthContext(c)
		c.JSON(http.StatusOK, user)
	}
	s.router.GET("/admin", append(s.manager.Auth("Admin"), echo)...)
	s.router.GET("/shared", append(s.manager.Auth("Admin", "Manager"), echo)...)
	s.router.GET("/any", append(s.manager.Auth(), echo)...)
}

func (s *AuthSuite) request(path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthSuite) TestMissingHeader() {
	w := s.request("/any", "")
	s.Equal(http.StatusUnauthorized, w.Code)

	var resp models.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(MsgAuthRequired, resp.Message)
}

func (s *AuthSuite) TestMalformedHeaders() {
	token := signToken(s.T(), testSecret, claimsFor("u1", "a@b.c", "Admin"))

	for _, header := range []string{
		token,
		"Bearer",
		"Bearer ",
		"Basic " + token,
		"bearer " + token,
	} {
		w := s.request("/any", header)
		s.Equalf(http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func (s *AuthSuite) TestWrongSecret() {
	token := signToken(s.T(), "other-secret", claimsFor("u1", "a@b.c", "Admin"))
	w := s.request("/any", "Bearer "+token)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthSuite) TestUnsignedTokenRejected() {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claimsFor("u1", "a@b.c", "Admin"))
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	s.Require().NoError(err)

	w := s.request("/any", "Bearer "+signed)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthSuite) TestExpiredTokenRejected() {
	claims := claimsFor("u1", "a@b.c", "Admin")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	w := s.request("/any", "Bearer "+signToken(s.T(), testSecret, claims))
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthSuite) TestManagerGetsOwnershipScope() {
	token := signToken(s.T(), testSecret, claimsFor("u42", "m@crm.io", "Manager"))
	w := s.request("/shared", "Bearer "+token)
	s.Require().Equal(http.StatusOK, w.Code)

	var user models.AuthContext
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &user))
	s.Equal("u42", user.ID)
	s.Equal(map[string]interface{}{"owner": "u42"}, user.FilterQuery)
}

func (s *AuthSuite) TestAdminGetsUnrestrictedScope() {
	token := signToken(s.T(), testSecret, claimsFor("u1", "a@crm.io", "Admin"))
	w := s.request("/shared", "Bearer "+token)
	s.Require().Equal(http.StatusOK, w.Code)

	var user models.AuthContext
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &user))
	s.Empty(user.FilterQuery)
}

func (s *AuthSuite) TestRoleDenied() {
	token := signToken(s.T(), testSecret, claimsFor("u42", "m@crm.io", "Manager"))
	w := s.request("/admin", "Bearer "+token)
	s.Equal(http.StatusForbidden, w.Code)

	var resp models.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(MsgAccessDenied, resp.Message)
}

func (s *AuthSuite) TestRoleMatchedAnywhereInSet() {
	// Second role in the token still satisfies the requirement.
	token := signToken(s.T(), testSecret, claimsFor("u7", "x@crm.io", "Support", "Admin"))
	w := s.request("/admin", "Bearer "+token)
	s.Equal(http.StatusOK, w.Code)
}

func (s *AuthSuite) TestEmptyRoleSetIsAuthOnly() {
	token := signToken(s.T(), testSecret, claimsFor("u9", "n@crm.io", "Nobody"))
	w := s.request("/any", "Bearer "+token)
	s.Equal(http.StatusOK, w.Code)
}

func (s *AuthSuite) TestRoleCheckFailsClosedWithoutIdentity() {
	router := gin.New()
	router.GET("/broken", s.manager.RequireRoles("Admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/broken", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	s.Equal(http.StatusForbidden, w.Code)
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}

func sessionBackend(t *testing.T, storedToken string) *bridge.Client {
	t.Helper()
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Pattern string      `json:"pattern"`
			Data    interface{} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "user:email", req.Pattern)

		json.NewEncoder(w).Encode(models.Envelope{
			StatusCode: http.StatusOK,
			Message:    "OK",
			Data:       map[string]interface{}{"accessToken": storedToken},
		})
	}))
	t.Cleanup(backend.Close)

	hostPort := strings.TrimPrefix(backend.URL, "http://")
	parts := strings.SplitN(hostPort, ":", 2)
	svc := models.ServiceConfig{Host: parts[0], Port: parts[1]}
	return bridge.NewClient(bridge.UserService, svc, time.Second, logger.NewLogger("error", "text"))
}

func sessionRouter(manager *JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", append(manager.Auth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})...)
	return router
}

func TestSessionCrossCheckAccepts(t *testing.T) {
	token := signToken(t, testSecret, claimsFor("u1", "a@b.c", "Admin"))

	cfg := &models.Config{JWTSecret: testSecret, VerifySession: true}
	manager := NewJWTManager(cfg, logger.NewLogger("error", "text"), sessionBackend(t, token))
	router := sessionRouter(manager)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionCrossCheckRejectsSupersededToken(t *testing.T) {
	token := signToken(t, testSecret, claimsFor("u1", "a@b.c", "Admin"))

	cfg := &models.Config{JWTSecret: testSecret, VerifySession: true}
	manager := NewJWTManager(cfg, logger.NewLogger("error", "text"), sessionBackend(t, "a-newer-token"))
	router := sessionRouter(manager)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
