package datasets

import (
	"encoding/json"
	"net/http"

	"genoscope/api/contexts"
	"genoscope/api/models/conditions"
	ds "genoscope/api/models/constants/dataset"
	"genoscope/api/models/dtos"
	e "genoscope/api/models/dtos/errors"
	"genoscope/api/mvc"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

func AllRsids(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)
	gc.ZapLogger.Debug("AllRsids hit", zap.String("dataset", string(gc.Dataset)))

	records, err := gc.DatasetStore.All(gc.Dataset)
	if err != nil {
		return mvc.RespondWithError(c, err)
	}

	return c.JSON(http.StatusOK, records)
}

func SearchByRsid(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)
	rsid := c.QueryParam("rsid")
	gc.ZapLogger.Debug("SearchByRsid hit", zap.String("dataset", string(gc.Dataset)), zap.String("rsid", rsid))

	records, err := gc.DatasetStore.ByIdentifier(gc.Dataset, rsid)
	if err != nil {
		return mvc.RespondWithError(c, err)
	}

	return c.JSON(http.StatusOK, records)
}

func FilterByDisease(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)
	disease := c.QueryParam("disease")
	gc.ZapLogger.Debug("FilterByDisease hit", zap.String("dataset", string(gc.Dataset)), zap.String("disease", disease))

	records, err := gc.DatasetStore.ByDisease(gc.Dataset, disease)
	if err != nil {
		return mvc.RespondWithError(c, err)
	}

	return c.JSON(http.StatusOK, records)
}

func ExploreGene(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)
	gene := c.QueryParam("gene")
	gc.ZapLogger.Debug("ExploreGene hit", zap.String("dataset", string(gc.Dataset)), zap.String("gene", gene))

	records, err := gc.DatasetStore.ByGene(gc.Dataset, gene)
	if err != nil {
		return mvc.RespondWithError(c, err)
	}

	return c.JSON(http.StatusOK, records)
}

func GetDatasetsOverview(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)
	store := gc.DatasetStore

	overview := map[string]dtos.DatasetOverviewDto{}
	for _, name := range ds.All() {
		schema, err := store.Schema(name)
		if err != nil {
			return mvc.RespondWithError(c, err)
		}
		count, _ := store.Count(name)
		distinctGenes, _ := store.DistinctGenes(name)

		columns := schema.Header
		if columns == nil {
			columns = []string{}
		}

		overview[string(name)] = dtos.DatasetOverviewDto{
			Count:         count,
			DistinctGenes: distinctGenes,
			Columns:       columns,
		}
	}

	return c.JSON(http.StatusOK, overview)
}

// AddData appends one record to the dataset named in the body
func AddData(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)

	var body dtos.AddDataRequestDto
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest("invalid JSON body"))
	}

	if !ds.IsKnownDataset(body.Dataset) {
		return mvc.RespondWithError(c, conditions.ErrInvalidDataset)
	}
	name := ds.CastToDatasetName(body.Dataset)
	gc.ZapLogger.Debug("AddData hit", zap.String("dataset", string(name)))

	record, err := gc.DatasetStore.Append(name, body.Data)
	if err != nil {
		return mvc.RespondWithError(c, err)
	}

	return c.JSON(http.StatusCreated, dtos.AddDataResponseDto{
		Message: "Data added successfully",
		Data:    record,
	})
}
