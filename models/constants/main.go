package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout Genoscope and it's
	associated services.
*/
type DatasetName string
type RiskLevel string
type RecordField string
