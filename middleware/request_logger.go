package middleware

import (
	"net/http"

	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/HSouheill/lifelessons_backend/security"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RequestLogger logs one structured line per request
func RequestLogger(logger *zap.SugaredLogger) echo.MiddlewareFunc {
	return echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if email := GetEmail(c); email != "" {
				fields = append(fields, "user", email)
			}
			switch {
			case v.Error != nil || v.Status >= http.StatusInternalServerError:
				logger.Errorw("request", append(fields, "error", v.Error)...)
			case v.Status >= http.StatusBadRequest:
				logger.Warnw("request", fields...)
			default:
				logger.Infow("request", fields...)
			}
			return nil
		},
	})
}

// HTTPErrorHandler renders framework errors (unknown route, bad method, body
// too large, panics) in the same envelope as handler errors. Internal detail
// is logged, never returned.
func HTTPErrorHandler(logger *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if status < http.StatusInternalServerError {
				if m, ok := he.Message.(string); ok {
					message = m
				} else {
					message = http.StatusText(status)
				}
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Errorw("unhandled error",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"headers", security.RedactHeaders(c.Request().Header),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, models.Response{Status: status, Message: message})
		}
		if err != nil {
			logger.Errorw("failed to write error response", "error", err)
		}
	}
}
