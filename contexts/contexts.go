package contexts

import (
	"genoscope/api/models"
	"genoscope/api/models/constants"
	"genoscope/api/services"
	"genoscope/api/services/datasets"
	"genoscope/api/services/kegg"
	"genoscope/api/services/prs"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

type (
	// "Helper" Context to pass into routes that need
	// the dataset store and other service singletons
	GenoscopeContext struct {
		echo.Context
		Config        *models.Config
		ZapLogger     *zap.Logger
		DatasetStore  *datasets.Store
		PrsCalculator *prs.Calculator
		KeggGateway   *kegg.Gateway
		AuthnService  *services.AuthnService

		// values forwarded by middleware
		Dataset constants.DatasetName
		Session *services.Session
	}
)

var _ echo.Context = (*GenoscopeContext)(nil)
