package middleware

import (
	"genoscope/api/contexts"
	"genoscope/api/models/conditions"
	"genoscope/api/models/dtos/errors"
	"genoscope/api/utils"
	"net/http"

	"github.com/labstack/echo"
)

/*
Echo middleware requiring a session token (from POST /login) on
write routes, when enabled in the configuration
*/
func MandateSessionTokenForWrites(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.GenoscopeContext)
		if !gc.Config.AuthX.RequireTokenForWrites {
			return next(gc)
		}

		// check request headers
		token := utils.FetchBearerToken(c.Request().Header.Get("Authorization"))
		if token == "" {
			return c.JSON(http.StatusUnauthorized,
				errors.CreateSimpleUnauthorized("missing 'Authorization' HTTP header").
					WithCondition(conditions.ErrInvalidSession.Name))
		}

		session, err := gc.AuthnService.Authenticate(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized,
				errors.CreateSimpleUnauthorized(err.Error()).
					WithCondition(conditions.ErrInvalidSession.Name))
		}

		// access granted!
		gc.Session = &session
		return next(gc)
	}
}
