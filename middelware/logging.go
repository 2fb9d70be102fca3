package middelware

import (
	"net/http"
	"time"

	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// MsgModuleFailure is the deliberately vague message for uncaught
// failures; internals never leak to clients.
const MsgModuleFailure = "There are some problems with the modules. Check ports and addresses"

// LoggingMiddleware provides request logging and panic recovery
type LoggingMiddleware struct {
	logger logger.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(log logger.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: log,
	}
}

// StructuredLogger logs each request with its outcome
func (m *LoggingMiddleware) StructuredLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"query":      raw,
			"status":     c.Writer.Status(),
			"latency":    latency.String(),
			"ip":         c.ClientIP(),
			"request_id": c.Writer.Header().Get("X-Request-ID"),
		}

		if user, ok := GetAuthContext(c); ok {
			fields["user_id"] = user.ID
		}

		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		log := m.logger.WithFields(fields)
		switch {
		case c.Writer.Status() >= 500:
			log.Error("request failed")
		case c.Writer.Status() >= 400:
			log.Warn("request rejected")
		default:
			log.Info("request completed")
		}
	}
}

// Recovery catches panics escaping handlers, reports them to the error
// tracker and answers with the fixed generic 500 envelope.
func (m *LoggingMiddleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		m.logger.Errorf("panic recovered: %v", recovered)

		if err, ok := recovered.(error); ok {
			sentry.CaptureException(err)
		} else {
			sentry.CaptureMessage(MsgModuleFailure)
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    MsgModuleFailure,
			Errors:     "Microservice Error",
		})
	})
}

// InitSentry configures the error tracker. A missing DSN disables
// reporting without disabling the recovery path.
func InitSentry(cfg *models.Config, log logger.Logger) {
	if cfg.SentryDSN == "" {
		log.Debug("sentry disabled: no DSN configured")
		return
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.AppEnv,
		Release:     cfg.AppName + "@" + cfg.AppVersion,
	}); err != nil {
		log.Errorf("sentry initialization failed: %v", err)
	}
}
