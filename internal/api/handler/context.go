package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContextUserID is the echo.Context key the Auth middleware stores the
// verified user id under.
const ContextUserID = "user_id"

// ctxUserID returns the user id injected by the Auth middleware. An empty
// value means the route was mounted without it.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(ContextUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Não autenticado")
	}
	return id, nil
}
