package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/czarstudio/studio-api/internal/api/middleware"
	"github.com/czarstudio/studio-api/internal/core/domain"
)

// actor returns the Identity injected by the Auth middleware. A missing
// identity means the route was registered without Auth; it fails closed.
func actor(c echo.Context) (domain.Identity, error) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return *identity, nil
}

// queryBool parses an optional boolean filter; anything but "true"/"false" is ignored.
func queryBool(c echo.Context, name string) *bool {
	switch c.QueryParam(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}
