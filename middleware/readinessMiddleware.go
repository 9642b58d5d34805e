package middleware

import (
	"context"
	"genoscope/api/contexts"
	"genoscope/api/models/conditions"
	"genoscope/api/models/dtos/errors"
	"net/http"
	"time"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

/*
Echo middleware holding requests until the datasets have been loaded
*/
func AwaitDatasetsLoaded(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.GenoscopeContext)

		timeout := time.Duration(gc.Config.Api.ReadyTimeoutSeconds) * time.Second
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		if err := gc.DatasetStore.WaitUntilReady(ctx); err != nil {
			gc.ZapLogger.Warn("datasets unavailable", zap.Error(err))

			return c.JSON(http.StatusServiceUnavailable,
				errors.CreateSimpleServiceUnavailable(conditions.ErrDatasetsNotReady.Error()).
					WithCondition(conditions.ErrDatasetsNotReady.Name))
		}

		return next(gc)
	}
}
