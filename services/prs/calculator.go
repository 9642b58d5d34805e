package prs

import (
	"math"
	"strconv"
	"strings"

	"genoscope/api/models"
	"genoscope/api/models/conditions"
	"genoscope/api/models/constants"
	ds "genoscope/api/models/constants/dataset"
	rf "genoscope/api/models/constants/record-field"
	riskLevel "genoscope/api/models/constants/risk-level"
	"genoscope/api/services/datasets"

	. "github.com/ahmetb/go-linq"
	"github.com/montanaflynn/stats"
)

const (
	RsIdNotFound   = "rsID not found"
	NoValidEffect  = "No valid beta or OR value found"
	DefaultWeight  = 1.0
	ScorePrecision = 2
)

type (
	Request struct {
		Gene string
		Snps []SnpWeight
	}

	SnpWeight struct {
		RsId   string
		Weight float64
	}

	Detail struct {
		RsId  string
		Score float64
		Error string
	}

	Result struct {
		Gene      string
		Total     float64
		RiskLevel constants.RiskLevel
		Details   []Detail
	}

	Calculator struct {
		store             *datasets.Store
		highThreshold     float64
		moderateThreshold float64
	}
)

func NewCalculator(store *datasets.Store, highThreshold float64, moderateThreshold float64) *Calculator {
	return &Calculator{
		store:             store,
		highThreshold:     highThreshold,
		moderateThreshold: moderateThreshold,
	}
}

// Calculate scores a request against the risk (ibd) dataset.
// A gene, when present, takes priority over the identifier list.
func (c *Calculator) Calculate(req Request) (*Result, error) {
	gene := strings.TrimSpace(req.Gene)

	snps := []SnpWeight{}
	for _, snp := range req.Snps {
		if strings.TrimSpace(snp.RsId) != "" {
			snps = append(snps, snp)
		}
	}

	if gene == "" && len(snps) == 0 {
		return nil, conditions.ErrMissingInput
	}

	schema, err := c.store.Schema(ds.Ibd)
	if err != nil {
		return nil, err
	}
	records, err := c.store.All(ds.Ibd)
	if err != nil {
		return nil, err
	}

	var details []Detail
	if gene != "" {
		details = scoreGene(schema, records, gene)
		if len(details) == 0 {
			return nil, conditions.ErrNoValidVariants
		}
	} else {
		details = scoreIdentifiers(schema, records, snps)
	}

	total := sumScores(details)

	return &Result{
		Gene:      gene,
		Total:     total,
		RiskLevel: riskLevel.Classify(total, c.highThreshold, c.moderateThreshold),
		Details:   details,
	}, nil
}

func scoreGene(schema models.Schema, records []models.Record, gene string) []Detail {
	details := []Detail{}

	From(records).
		WhereT(func(r models.Record) bool {
			return GeneCellContains(schema.Value(r, rf.Gene), gene)
		}).
		ForEachT(func(r models.Record) {
			if effect, ok := EffectSize(schema, r); ok {
				details = append(details, Detail{
					RsId:  strings.TrimSpace(schema.Value(r, rf.RsId)),
					Score: effect * DefaultWeight,
				})
			}
		})

	return details
}

func scoreIdentifiers(schema models.Schema, records []models.Record, snps []SnpWeight) []Detail {
	details := make([]Detail, 0, len(snps))

	for _, snp := range snps {
		wanted := models.NormalizeIdentifier(snp.RsId)
		match := From(records).FirstWithT(func(r models.Record) bool {
			return schema.Identifier(r) == wanted
		})

		if match == nil {
			details = append(details, Detail{RsId: snp.RsId, Error: RsIdNotFound})
			continue
		}

		effect, ok := EffectSize(schema, match.(models.Record))
		if !ok {
			details = append(details, Detail{RsId: snp.RsId, Error: NoValidEffect})
			continue
		}

		details = append(details, Detail{RsId: snp.RsId, Score: effect * snp.Weight})
	}

	return details
}

// GeneCellContains reports whether a (possibly comma-separated) Gene
// cell lists the gene, case-insensitively
func GeneCellContains(cell string, gene string) bool {
	for _, g := range strings.Split(cell, ",") {
		if strings.EqualFold(strings.TrimSpace(g), gene) {
			return true
		}
	}
	return false
}

// EffectSize is the record's beta when it parses as a finite number,
// otherwise ln(odds ratio) when that is finite
func EffectSize(schema models.Schema, r models.Record) (float64, bool) {
	if beta, ok := parseFinite(schema.Value(r, rf.Beta)); ok {
		return beta, true
	}

	if or, ok := parseFinite(schema.Value(r, rf.OddsRatio)); ok {
		effect := math.Log(or)
		if !math.IsNaN(effect) && !math.IsInf(effect, 0) {
			return effect, true
		}
	}

	return 0, false
}

// ParseWeight falls back to the default genotype weight for
// blank or non-numeric input
func ParseWeight(text string) float64 {
	if w, ok := parseFinite(text); ok {
		return w
	}
	return DefaultWeight
}

func parseFinite(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func sumScores(details []Detail) float64 {
	scores := stats.Float64Data{}
	for _, d := range details {
		if d.Error == "" {
			scores = append(scores, d.Score)
		}
	}

	if len(scores) == 0 {
		return 0
	}

	total, _ := stats.Sum(scores)
	return total
}

// Round renders a score at the two decimals the API reports
func Round(value float64) float64 {
	rounded, err := stats.Round(value, ScorePrecision)
	if err != nil {
		return value
	}
	return rounded
}

func Format(value float64) string {
	return strconv.FormatFloat(Round(value), 'f', ScorePrecision, 64)
}
