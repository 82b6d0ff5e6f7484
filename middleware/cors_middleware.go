package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewCORSConfig creates the CORS configuration for the client origin plus any
// extra origins from CORS_ALLOWED_ORIGINS
func NewCORSConfig(clientURL string, extraOrigins []string) echoMiddleware.CORSConfig {
	origins := []string{
		"http://localhost:5173", // Vite dev server
		"http://localhost:3000",
	}
	if clientURL != "" {
		origins = append(origins, clientURL)
	}
	origins = append(origins, extraOrigins...)

	return echoMiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			echo.HeaderXRequestedWith,
		},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentLength, echo.HeaderXRequestID},
		MaxAge:           86400, // 24 hours
	}
}

// GlobalCORS creates the global CORS middleware
func GlobalCORS(clientURL string, extraOrigins []string) echo.MiddlewareFunc {
	return echoMiddleware.CORSWithConfig(NewCORSConfig(clientURL, extraOrigins))
}
