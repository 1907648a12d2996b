package middleware

import (
	"crypto/subtle"
	"storefront-demo/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminAuth guards the admin area with HTTP basic auth. With no
// credentials configured every request is rejected.
func AdminAuth(admin config.Admin) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: "admin",
		Validator: func(username, password string, c echo.Context) (bool, error) {
			if admin.Username == "" || admin.Password == "" {
				return false, nil
			}
			userOK := subtle.ConstantTimeCompare([]byte(username), []byte(admin.Username)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(password), []byte(admin.Password)) == 1
			return userOK && passOK, nil
		},
	})
}
