package auth

import (
	"encoding/json"
	"net/http"

	"genoscope/api/contexts"
	"genoscope/api/models/dtos"
	e "genoscope/api/models/dtos/errors"
	"genoscope/api/mvc"

	"github.com/labstack/echo"
)

func Signup(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)

	var body dtos.CredentialsDto
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest("invalid JSON body"))
	}

	if err := gc.AuthnService.Signup(body.Email, body.Password); err != nil {
		return mvc.RespondWithError(c, err)
	}

	return c.JSON(http.StatusCreated, dtos.MessageResponseDto{Message: "User registered successfully"})
}

func Login(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)

	var body dtos.CredentialsDto
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest("invalid JSON body"))
	}

	session, err := gc.AuthnService.Login(body.Email, body.Password)
	if err != nil {
		return mvc.RespondWithError(c, err)
	}

	return c.JSON(http.StatusOK, dtos.LoginResponseDto{
		Token:     session.Token,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	})
}
