package middelware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"crm-gateway/bridge"
	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tidwall/gjson"
)

// Generic denial messages. They are deliberately fixed: authentication
// failures never reveal which verification step failed, authorization
// failures never reveal the required role set.
const (
	MsgAuthRequired = "Authorization required"
	MsgAccessDenied = "Access denied. Please contact support"
)

// Context keys set by AuthMiddleware
const (
	ctxKeyAuthUser  = "auth_user"
	ctxKeyJWTClaims = "jwt_claims"
)

// JWTManager verifies bearer tokens and gates routes on role requirements
type JWTManager struct {
	config     *models.Config
	log        logger.Logger
	userClient *bridge.Client
}

// NewJWTManager creates a new JWT manager. userClient is the handle used
// for the optional session cross-check; it may be nil when the check is
// disabled by configuration.
func NewJWTManager(cfg *models.Config, log logger.Logger, userClient *bridge.Client) *JWTManager {
	return &JWTManager{
		config:     cfg,
		log:        log,
		userClient: userClient,
	}
}

// ValidateToken verifies a JWT token's signature and returns its claims
func (j *JWTManager) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks
		if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		} else if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("invalid signing algorithm: %v", method.Alg())
		}
		return []byte(j.config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}

	return claims, nil
}

// AuthMiddleware establishes the caller's identity or rejects the request.
// It is the only place a token is decoded; everything downstream reads the
// bound AuthContext.
func (j *JWTManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			j.log.Debug("missing Authorization header")
			abortUnauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			j.log.Debug("malformed Authorization header")
			abortUnauthorized(c)
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		claims, err := j.ValidateToken(tokenString)
		if err != nil {
			j.log.Debugf("token validation failed: %v", err)
			abortUnauthorized(c)
			return
		}

		// Managers only see their own records; unrestricted roles get an
		// empty scope.
		filterQuery := map[string]interface{}{}
		if claims.PrimaryRole() == "Manager" {
			filterQuery["owner"] = claims.UserID
		}

		if j.config.VerifySession && j.userClient != nil {
			if err := j.verifySession(c, claims, tokenString); err != nil {
				j.log.Debugf("session cross-check failed for %s: %v", claims.UserID, err)
				abortUnauthorized(c)
				return
			}
		}

		c.Set(ctxKeyAuthUser, &models.AuthContext{
			ID:          claims.UserID,
			Email:       claims.Email,
			Access:      tokenString,
			FilterQuery: filterQuery,
		})
		c.Set(ctxKeyJWTClaims, claims)
		c.Next()
	}
}

// verifySession cross-checks the presented token against the current
// session record held by the user service, catching tokens superseded by
// a newer login or a password change.
func (j *JWTManager) verifySession(c *gin.Context, claims *models.JWTClaims, token string) error {
	env, err := j.userClient.Send(c.Request.Context(), "user:email", claims.Email)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(env.Data)
	if err != nil {
		return fmt.Errorf("cannot inspect session record: %w", err)
	}

	current := gjson.GetBytes(raw, "accessToken")
	if !current.Exists() || current.String() != token {
		return fmt.Errorf("token superseded")
	}
	return nil
}

// RequireRoles restricts a route to the declared role names. An empty
// declaration passes automatically: authentication alone is the gate. The
// check trusts the identity bound by AuthMiddleware and never re-decodes
// the token; a missing identity fails closed.
func (j *JWTManager) RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(requiredRoles) == 0 {
			c.Next()
			return
		}

		value, exists := c.Get(ctxKeyJWTClaims)
		if !exists {
			j.log.Error("role check reached without an established identity")
			abortForbidden(c)
			return
		}

		claims, ok := value.(*models.JWTClaims)
		if !ok {
			abortForbidden(c)
			return
		}

		for _, role := range claims.Roles {
			for _, required := range requiredRoles {
				if role.Name == required {
					c.Next()
					return
				}
			}
		}

		j.log.Debugf("user %s denied: no matching role", claims.UserID)
		abortForbidden(c)
	}
}

// Auth declares, in one call, both "require these roles" and "enforce via
// the auth and roles middleware". Composition sugar over AuthMiddleware
// and RequireRoles; attaching it twice is harmless, the chain closest to
// the route wins.
func (j *JWTManager) Auth(roles ...string) gin.HandlersChain {
	return gin.HandlersChain{j.AuthMiddleware(), j.RequireRoles(roles...)}
}

// GetAuthContext returns the identity bound by AuthMiddleware.
func GetAuthContext(c *gin.Context) (*models.AuthContext, bool) {
	value, exists := c.Get(ctxKeyAuthUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.AuthContext)
	return user, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Message:    MsgAuthRequired,
	})
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
		StatusCode: http.StatusForbidden,
		Message:    MsgAccessDenied,
	})
}
