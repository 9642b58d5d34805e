package models

import (
	"genoscope/api/models/constants"
	rf "genoscope/api/models/constants/record-field"
)

type SubmissionField struct {
	Field    constants.RecordField
	Value    string
	Required bool
}

// Submission is a typed /add-data payload for one dataset kind
type Submission interface {
	Fields() []SubmissionField
}

type ClinvarSubmission struct {
	RsId                 string `mapstructure:"rsid"`
	Gene                 string `mapstructure:"gene"`
	Phenotype            string `mapstructure:"phenotype"`
	ClinicalSignificance string `mapstructure:"clinical_significance"`
	Chromosome           string `mapstructure:"chromosome"`
	DatasetLink          string `mapstructure:"dataset_link"`
}

func (s ClinvarSubmission) Fields() []SubmissionField {
	return []SubmissionField{
		{rf.RsId, s.RsId, true},
		{rf.Gene, s.Gene, true},
		{rf.Phenotype, s.Phenotype, true},
		{rf.ClinicalSignificance, s.ClinicalSignificance, true},
		{rf.Chromosome, s.Chromosome, true},
		{rf.DatasetLink, s.DatasetLink, false},
	}
}

type RiskSubmission struct {
	RsId        string `mapstructure:"rsid"`
	Gene        string `mapstructure:"gene"`
	RiskAllele  string `mapstructure:"risk_allele"`
	OddsRatio   string `mapstructure:"odds_ratio"`
	DatasetLink string `mapstructure:"dataset_link"`
}

func (s RiskSubmission) Fields() []SubmissionField {
	return []SubmissionField{
		{rf.RsId, s.RsId, true},
		{rf.Gene, s.Gene, true},
		{rf.RiskAllele, s.RiskAllele, true},
		{rf.OddsRatio, s.OddsRatio, true},
		{rf.DatasetLink, s.DatasetLink, false},
	}
}

// SubmissionFieldNames lists the canonical keys of a submission, in order
func SubmissionFieldNames(s Submission) []constants.RecordField {
	fields := s.Fields()
	names := make([]constants.RecordField, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}
