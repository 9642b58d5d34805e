package riskLevel

import "genoscope/api/models/constants"

const (
	High     constants.RiskLevel = "High"
	Moderate constants.RiskLevel = "Moderate"
	Low      constants.RiskLevel = "Low"
)

const (
	DefaultHighThreshold     float64 = 0.7
	DefaultModerateThreshold float64 = 0.4
)

// Classify buckets a total polygenic risk score; both thresholds are exclusive
func Classify(total float64, highThreshold float64, moderateThreshold float64) constants.RiskLevel {
	switch {
	case total > highThreshold:
		return High
	case total > moderateThreshold:
		return Moderate
	default:
		return Low
	}
}
