package dataset

import (
	"genoscope/api/models/constants"
	"strings"
)

const (
	Unknown constants.DatasetName = "Unknown"

	Clinvar constants.DatasetName = "clinvar"
	Ibd     constants.DatasetName = "ibd"
)

// All lists the datasets served by the API, in display order
func All() []constants.DatasetName {
	return []constants.DatasetName{Clinvar, Ibd}
}

func CastToDatasetName(text string) constants.DatasetName {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "clinvar":
		return Clinvar
	case "ibd":
		return Ibd
	default:
		return Unknown
	}
}

func IsKnownDataset(text string) bool {
	// attempt to cast to a dataset name and
	// return if unknown
	return CastToDatasetName(text) != Unknown
}
