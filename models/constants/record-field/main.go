package recordField

import (
	"genoscope/api/models/constants"
	"strings"
	"unicode"
)

// Canonical record keys, as submitted to /add-data
const (
	RsId                 constants.RecordField = "rsid"
	Gene                 constants.RecordField = "gene"
	Phenotype            constants.RecordField = "phenotype"
	ClinicalSignificance constants.RecordField = "clinical_significance"
	Chromosome           constants.RecordField = "chromosome"
	RiskAllele           constants.RecordField = "risk_allele"
	OddsRatio            constants.RecordField = "odds_ratio"
	Beta                 constants.RecordField = "beta"
	DatasetLink          constants.RecordField = "dataset_link"
)

// Header names (normalized, see Normalize) under which each field
// may appear in a dataset file
var aliases = map[constants.RecordField][]string{
	RsId:                 {"rsid", "rsids", "snp", "snpid", "variantid"},
	Gene:                 {"gene", "genes", "genesymbol", "symbol"},
	Phenotype:            {"disease", "phenotype", "trait", "condition"},
	ClinicalSignificance: {"clinicalsignificance", "significance", "clnsig"},
	Chromosome:           {"chromosome", "chrom", "chr"},
	RiskAllele:           {"riskallele", "effectallele"},
	OddsRatio:            {"orvalue", "oddsratio", "or"},
	Beta:                 {"beta", "effectsize"},
	DatasetLink:          {"datasetlink", "link", "url"},
}

func All() []constants.RecordField {
	return []constants.RecordField{
		RsId, Gene, Phenotype, ClinicalSignificance, Chromosome,
		RiskAllele, OddsRatio, Beta, DatasetLink,
	}
}

func Aliases(field constants.RecordField) []string {
	return aliases[field]
}

// Normalize lowercases a header name and drops everything
// that isn't a letter or a digit ("Clinical Significance" -> "clinicalsignificance")
func Normalize(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func Matches(field constants.RecordField, header string) bool {
	normalized := Normalize(header)
	for _, a := range Aliases(field) {
		if a == normalized {
			return true
		}
	}
	return false
}
