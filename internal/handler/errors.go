package handler

import (
	"errors"
	"net/http"
	"storefront-demo/internal/service"

	"github.com/labstack/echo/v4"
)

// httpError maps service sentinels to responses. Anything else goes to
// echo's error handler as a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrVerificationExpired):
		return echo.NewHTTPError(http.StatusGone, "This download link has expired.")
	case errors.Is(err, service.ErrAlreadyPurchased):
		return echo.NewHTTPError(http.StatusConflict, "You already purchased this product.")
	}
	return err
}
