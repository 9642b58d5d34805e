package kegg

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"genoscope/api/contexts"
	"genoscope/api/models/conditions"
	"genoscope/api/models/dtos"
	e "genoscope/api/models/dtos/errors"
	"genoscope/api/mvc"
	"genoscope/api/utils"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

func GetPathwaysForGene(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)
	gene := strings.TrimSpace(c.Param("gene"))
	gc.ZapLogger.Debug("GetPathwaysForGene hit", zap.String("gene", gene))

	if gene == "" {
		return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest("missing gene"))
	}

	pathways, err := gc.KeggGateway.PathwaysForGene(c.Request().Context(), gene)
	if err != nil {
		return mvc.RespondWithError(c, err)
	}

	return c.JSON(http.StatusOK, pathways)
}

func GetPathwayImage(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)
	pathwayId := strings.TrimSpace(c.Param("pathwayId"))
	gc.ZapLogger.Debug("GetPathwayImage hit", zap.String("pathwayId", pathwayId))

	if pathwayId == "" {
		return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest("missing pathway id"))
	}

	image, err := gc.KeggGateway.PathwayImage(c.Request().Context(), pathwayId)
	if err != nil {
		return mvc.RespondWithError(c, err)
	}

	return c.JSON(http.StatusOK, dtos.PathwayImageDto{
		PathwayId: image.PathwayId,
		ImageSrc:  utils.ToDataUri(image.ContentType, image.Payload),
	})
}

// AnalyzePathways resolves the pathways of every gene in the body.
// Genes KEGG doesn't know are reported under "errors" rather than failing
// the whole request.
func AnalyzePathways(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)

	var body dtos.AnalyzePathwaysRequestDto
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest("invalid JSON body"))
	}

	genes := []string{}
	for _, g := range body.Genes {
		if g = strings.TrimSpace(g); g != "" && !utils.StringInSlice(g, genes) {
			genes = append(genes, g)
		}
	}
	if len(genes) == 0 {
		return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest("Gene list is required"))
	}
	gc.ZapLogger.Debug("AnalyzePathways hit", zap.Strings("genes", genes))

	response := dtos.AnalyzePathwaysResponseDto{
		Message:       "Pathway analysis completed",
		AnalyzedGenes: genes,
		Pathways:      map[string][]string{},
		Errors:        map[string]string{},
	}

	for _, gene := range genes {
		resolved, err := gc.KeggGateway.PathwaysForGene(c.Request().Context(), gene)
		if err != nil {
			if errors.Is(err, conditions.ErrGeneNotFound) {
				response.Errors[gene] = err.Error()
				continue
			}
			return mvc.RespondWithError(c, err)
		}

		names := make([]string, 0, len(resolved.Pathways))
		for _, p := range resolved.Pathways {
			names = append(names, p.Description)
		}
		response.Pathways[gene] = names
	}

	return c.JSON(http.StatusOK, response)
}
