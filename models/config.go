package models

import (
	riskLevel "genoscope/api/models/constants/risk-level"
)

type Config struct {
	Debug bool `yaml:"debug" envconfig:"GENOSCOPE_DEBUG"`

	Api struct {
		Url                 string `yaml:"url" envconfig:"GENOSCOPE_PUBLIC_URL"`
		Port                string `yaml:"port" envconfig:"GENOSCOPE_API_PORT"`
		ClinvarPath         string `yaml:"clinvarPath" envconfig:"GENOSCOPE_CLINVAR_PATH"`
		IbdPath             string `yaml:"ibdPath" envconfig:"GENOSCOPE_IBD_PATH"`
		UsersPath           string `yaml:"usersPath" envconfig:"GENOSCOPE_USERS_PATH"`
		ReadyTimeoutSeconds int    `yaml:"readyTimeoutSeconds" envconfig:"GENOSCOPE_READY_TIMEOUT_SECONDS"`
	} `yaml:"api"`

	Prs struct {
		HighThreshold     float64 `yaml:"highThreshold" envconfig:"GENOSCOPE_PRS_HIGH_THRESHOLD"`
		ModerateThreshold float64 `yaml:"moderateThreshold" envconfig:"GENOSCOPE_PRS_MODERATE_THRESHOLD"`
	} `yaml:"prs"`

	Kegg struct {
		Url            string `yaml:"url" envconfig:"GENOSCOPE_KEGG_URL"`
		Organism       string `yaml:"organism" envconfig:"GENOSCOPE_KEGG_ORGANISM"`
		TimeoutSeconds int    `yaml:"timeoutSeconds" envconfig:"GENOSCOPE_KEGG_TIMEOUT_SECONDS"`
		MaxRetries     uint64 `yaml:"maxRetries" envconfig:"GENOSCOPE_KEGG_MAX_RETRIES"`
		Concurrency    int    `yaml:"concurrency" envconfig:"GENOSCOPE_KEGG_CONCURRENCY"`
	} `yaml:"kegg"`

	AuthX struct {
		SessionTtlMinutes     int  `yaml:"sessionTtlMinutes" envconfig:"GENOSCOPE_SESSION_TTL_MINUTES"`
		RequireTokenForWrites bool `yaml:"requireTokenForWrites" envconfig:"GENOSCOPE_REQUIRE_TOKEN_FOR_WRITES"`
		BcryptCost            int  `yaml:"bcryptCost" envconfig:"GENOSCOPE_BCRYPT_COST"`
	} `yaml:"authx"`
}

// DefaultConfig returns the baseline that the optional
// config file and then the environment are layered onto
func DefaultConfig() Config {
	var cfg Config

	cfg.Api.Port = "5000"
	cfg.Api.ClinvarPath = "data/cleaned_clinvar_data.csv"
	cfg.Api.IbdPath = "data/cleaned_risk_db_data_new.csv"
	cfg.Api.UsersPath = "data/users.csv"
	cfg.Api.ReadyTimeoutSeconds = 30

	cfg.Prs.HighThreshold = riskLevel.DefaultHighThreshold
	cfg.Prs.ModerateThreshold = riskLevel.DefaultModerateThreshold

	cfg.Kegg.Url = "https://rest.kegg.jp"
	cfg.Kegg.Organism = "hsa"
	cfg.Kegg.TimeoutSeconds = 15
	cfg.Kegg.MaxRetries = 3
	cfg.Kegg.Concurrency = 8

	cfg.AuthX.SessionTtlMinutes = 720
	cfg.AuthX.BcryptCost = 10

	return cfg
}
