package middleware

import (
	"genoscope/api/contexts"
	"genoscope/api/models/conditions"
	ds "genoscope/api/models/constants/dataset"
	"genoscope/api/models/dtos/errors"
	"net/http"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

/*
Echo middleware to ensure a valid `dataset` HTTP query parameter was provided
*/
func MandateDatasetAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.GenoscopeContext)

		// check for dataset query parameter
		dataset := c.QueryParam("dataset")
		if !ds.IsKnownDataset(dataset) {
			// if no dataset was provided, or it was unknown, return an error
			gc.ZapLogger.Debug("invalid dataset", zap.String("dataset", dataset))

			return c.JSON(http.StatusBadRequest,
				errors.CreateSimpleBadRequest(conditions.ErrInvalidDataset.Error()).
					WithCondition(conditions.ErrInvalidDataset.Name))
		}

		// forward a type-safe value down the pipeline
		gc.Dataset = ds.CastToDatasetName(dataset)

		return next(gc)
	}
}

/*
Echo middleware to ensure a non-empty query parameter was provided
*/
func MandateQueryParam(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(c.QueryParam(name)) == 0 {
				return c.JSON(http.StatusBadRequest,
					errors.CreateSimpleBadRequest("missing "+name))
			}
			return next(c)
		}
	}
}
