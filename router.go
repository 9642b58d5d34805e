package main

import (
	"genoscope/api/contexts"
	gam "genoscope/api/middleware"
	"genoscope/api/models"
	authMvc "genoscope/api/mvc/auth"
	datasetsMvc "genoscope/api/mvc/datasets"
	keggMvc "genoscope/api/mvc/kegg"
	prsMvc "genoscope/api/mvc/prs"
	serviceInfoMvc "genoscope/api/mvc/service-info"
	"genoscope/api/services"
	"genoscope/api/services/datasets"
	"genoscope/api/services/kegg"
	"genoscope/api/services/prs"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"go.uber.org/zap"
)

type dependencies struct {
	Config        *models.Config
	Logger        *zap.Logger
	DatasetStore  *datasets.Store
	PrsCalculator *prs.Calculator
	KeggGateway   *kegg.Gateway
	AuthnService  *services.AuthnService
}

func newServer(deps dependencies) *echo.Echo {
	// Instantiate Server
	e := echo.New()
	e.HideBanner = true

	// Configure Server
	e.Use(middleware.Recover())
	if deps.Config.Debug {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
	}))

	// -- Override handlers with "custom Genoscope" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.GenoscopeContext{
				Context:       c,
				Config:        deps.Config,
				ZapLogger:     deps.Logger,
				DatasetStore:  deps.DatasetStore,
				PrsCalculator: deps.PrsCalculator,
				KeggGateway:   deps.KeggGateway,
				AuthnService:  deps.AuthnService,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", serviceInfoMvc.GetWelcome)

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)

	// -- Datasets
	e.GET("/datasets/overview", datasetsMvc.GetDatasetsOverview,
		// middleware
		gam.AwaitDatasetsLoaded)
	e.GET("/all-rsids", datasetsMvc.AllRsids,
		// middleware
		gam.MandateDatasetAttribute,
		gam.AwaitDatasetsLoaded)
	e.GET("/search", datasetsMvc.SearchByRsid,
		// middleware
		gam.MandateDatasetAttribute,
		gam.MandateQueryParam("rsid"),
		gam.AwaitDatasetsLoaded)
	e.GET("/filter-disease", datasetsMvc.FilterByDisease,
		// middleware
		gam.MandateDatasetAttribute,
		gam.MandateQueryParam("disease"),
		gam.AwaitDatasetsLoaded)
	e.GET("/explore-gene", datasetsMvc.ExploreGene,
		// middleware
		gam.MandateDatasetAttribute,
		gam.MandateQueryParam("gene"),
		gam.AwaitDatasetsLoaded)
	e.POST("/add-data", datasetsMvc.AddData,
		// middleware
		gam.MandateSessionTokenForWrites,
		gam.AwaitDatasetsLoaded)

	// -- Polygenic Risk Scores
	e.POST("/calculate-prs", prsMvc.CalculatePrs,
		// middleware
		gam.AwaitDatasetsLoaded)

	// -- Pathways (KEGG)
	e.GET("/api/kegg/pathway/:pathwayId", keggMvc.GetPathwayImage)
	e.GET("/api/kegg/:gene", keggMvc.GetPathwaysForGene)
	e.POST("/analyze-pathways", keggMvc.AnalyzePathways)

	// -- Authentication
	e.POST("/signup", authMvc.Signup)
	e.POST("/login", authMvc.Login)

	return e
}
