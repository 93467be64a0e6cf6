package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
)

// currentUser extracts the user resolved by the Auth middleware. Its absence
// means the middleware did not run on this route; fail closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
