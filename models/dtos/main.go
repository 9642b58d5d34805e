package dtos

import (
	"genoscope/api/models"
	"genoscope/api/models/constants"
	"time"
)

// -- errors
type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Error     string         `json:"error,omitempty"` // condition name, e.g. "InvalidDataset"
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}
type GeneralError struct {
	Message string `json:"message"`
}

func (dto GeneralErrorResponseDto) WithCondition(condition string) GeneralErrorResponseDto {
	dto.Error = condition
	return dto
}

// -- generic
type MessageResponseDto struct {
	Message string `json:"message"`
}

// -- datasets
type DatasetOverviewDto struct {
	Count         int      `json:"count"`
	DistinctGenes int      `json:"distinctGenes"`
	Columns       []string `json:"columns"`
}

type AddDataRequestDto struct {
	Dataset string                 `json:"dataset"`
	Data    map[string]interface{} `json:"data"`
}
type AddDataResponseDto struct {
	Message string        `json:"message"`
	Data    models.Record `json:"data"`
}

// -- polygenic risk scores
type PrsResponseDto struct {
	Gene      string              `json:"gene,omitempty"`
	TotalPRS  string              `json:"totalPRS"`
	RiskLevel constants.RiskLevel `json:"riskLevel"`
	Details   []PrsDetailDto      `json:"details"`
}
type PrsDetailDto struct {
	RsId     string `json:"rsID"`
	PrsScore string `json:"prsScore,omitempty"`
	Error    string `json:"error,omitempty"`
}

// -- pathways
type PathwayImageDto struct {
	PathwayId string `json:"pathwayId"`
	ImageSrc  string `json:"imageSrc"`
}

type AnalyzePathwaysRequestDto struct {
	Genes []string `json:"genes"`
}
type AnalyzePathwaysResponseDto struct {
	Message       string              `json:"message"`
	AnalyzedGenes []string            `json:"analyzedGenes"`
	Pathways      map[string][]string `json:"pathways"`
	Errors        map[string]string   `json:"errors,omitempty"`
}

// -- authentication
type CredentialsDto struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type LoginResponseDto struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}
