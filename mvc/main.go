package mvc

import (
	"errors"
	"net/http"

	"genoscope/api/contexts"
	"genoscope/api/models/conditions"
	"genoscope/api/models/dtos"
	e "genoscope/api/models/dtos/errors"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

// RespondWithError maps a service error onto the matching HTTP status and
// error body. Errors that aren't conditions are logged and reported as 500s.
func RespondWithError(c echo.Context, err error) error {
	var (
		dto           dtos.GeneralErrorResponseDto
		missingFields *conditions.MissingFieldsError
		invalid       *conditions.InvalidSubmissionError
		upstream      *conditions.UpstreamError
	)

	switch {
	case errors.As(err, &missingFields):
		dto = e.CreateMultiple(http.StatusBadRequest, []string{missingFields.Error()})

	case errors.As(err, &invalid):
		dto = e.CreateSimpleBadRequest(invalid.Error())

	case errors.As(err, &upstream):
		logger(c).Error("upstream failure", zap.Error(err))
		dto = e.CreateSimpleInternalServerError(err.Error())

	case errors.Is(err, conditions.ErrInvalidDataset),
		errors.Is(err, conditions.ErrMissingInput),
		errors.Is(err, conditions.ErrMissingCredentials),
		errors.Is(err, conditions.ErrUserExists):
		dto = e.CreateSimpleBadRequest(err.Error())

	case errors.Is(err, conditions.ErrNoValidVariants),
		errors.Is(err, conditions.ErrGeneNotFound),
		errors.Is(err, conditions.ErrPathwayNotFound):
		dto = e.CreateSimpleNotFound(err.Error())

	case errors.Is(err, conditions.ErrInvalidCredentials),
		errors.Is(err, conditions.ErrInvalidSession):
		dto = e.CreateSimpleUnauthorized(err.Error())

	case errors.Is(err, conditions.ErrDatasetsNotReady):
		dto = e.CreateSimpleServiceUnavailable(err.Error())

	default:
		logger(c).Error("unhandled error", zap.Error(err))
		dto = e.CreateSimpleInternalServerError("Something went wrong... Please contact the administrator!")
	}

	return c.JSON(dto.Code, dto.WithCondition(conditions.NameOf(err)))
}

func logger(c echo.Context) *zap.Logger {
	if gc, ok := c.(*contexts.GenoscopeContext); ok && gc.ZapLogger != nil {
		return gc.ZapLogger
	}
	return zap.NewNop()
}
