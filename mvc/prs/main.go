package prs

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"genoscope/api/contexts"
	"genoscope/api/models/dtos"
	e "genoscope/api/models/dtos/errors"
	"genoscope/api/mvc"
	prsService "genoscope/api/services/prs"

	"github.com/Jeffail/gabs"
	"github.com/labstack/echo"
	"go.uber.org/zap"
)

func CalculatePrs(c echo.Context) error {
	gc := c.(*contexts.GenoscopeContext)

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest("unreadable body"))
	}

	req, err := ParseRequest(body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, e.CreateSimpleBadRequest(err.Error()))
	}
	gc.ZapLogger.Debug("CalculatePrs hit", zap.String("gene", req.Gene), zap.Int("snps", len(req.Snps)))

	result, err := gc.PrsCalculator.Calculate(req)
	if err != nil {
		return mvc.RespondWithError(c, err)
	}

	return c.JSON(http.StatusOK, NewPrsResponseDto(result))
}

// ParseRequest reads a `{gene?, snps?: [{rsID, genotypeWeight?}]}` body.
// Weights may be JSON numbers or numeric strings; anything else counts as 1.
// Bare strings are accepted as snps entries too.
func ParseRequest(body []byte) (prsService.Request, error) {
	req := prsService.Request{Snps: []prsService.SnpWeight{}}
	if len(strings.TrimSpace(string(body))) == 0 {
		return req, nil
	}

	parsed, err := gabs.ParseJSON(body)
	if err != nil {
		return req, fmt.Errorf("invalid JSON body")
	}

	if gene, ok := parsed.Path("gene").Data().(string); ok {
		req.Gene = strings.TrimSpace(gene)
	}

	if parsed.Path("snps").Data() == nil {
		return req, nil
	}
	snps, err := parsed.S("snps").Children()
	if err != nil {
		return req, fmt.Errorf("snps must be an array")
	}

	for _, snp := range snps {
		switch value := snp.Data().(type) {
		case string:
			req.Snps = append(req.Snps, prsService.SnpWeight{RsId: value, Weight: prsService.DefaultWeight})
		case map[string]interface{}:
			rsId, _ := value["rsID"].(string)
			req.Snps = append(req.Snps, prsService.SnpWeight{
				RsId:   rsId,
				Weight: coerceWeight(value["genotypeWeight"]),
			})
		}
	}

	return req, nil
}

func coerceWeight(raw interface{}) float64 {
	switch w := raw.(type) {
	case float64:
		return w
	case json.Number:
		return prsService.ParseWeight(w.String())
	case string:
		return prsService.ParseWeight(w)
	default:
		return prsService.DefaultWeight
	}
}

func NewPrsResponseDto(result *prsService.Result) dtos.PrsResponseDto {
	details := make([]dtos.PrsDetailDto, 0, len(result.Details))
	for _, d := range result.Details {
		detail := dtos.PrsDetailDto{RsId: d.RsId}
		if d.Error != "" {
			detail.Error = d.Error
		} else {
			detail.PrsScore = prsService.Format(d.Score)
		}
		details = append(details, detail)
	}

	return dtos.PrsResponseDto{
		Gene:      result.Gene,
		TotalPRS:  prsService.Format(result.Total),
		RiskLevel: result.RiskLevel,
		Details:   details,
	}
}
