package middleware

import (
	"net/http"

	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/HSouheill/lifelessons_backend/security"
	"github.com/labstack/echo/v4"
)

// RequireJSON rejects POST and PUT bodies that are not JSON. Bodiless requests
// such as counter increments pass through, including those sent with chunked
// encoding (unknown length) and no Content-Type.
func RequireJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodPost && req.Method != http.MethodPut {
				return next(c)
			}
			contentType := req.Header.Get(echo.HeaderContentType)
			if req.ContentLength == 0 || (req.ContentLength < 0 && contentType == "") {
				return next(c)
			}
			if !security.ValidateContentType(contentType) {
				return c.JSON(http.StatusUnsupportedMediaType, models.Response{
					Status:  http.StatusUnsupportedMediaType,
					Message: "Content-Type must be application/json",
				})
			}
			return next(c)
		}
	}
}
