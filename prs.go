package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	prsMvc "genoscope/api/mvc/prs"
	"genoscope/api/services/datasets"
	"genoscope/api/services/prs"
	"genoscope/api/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPrsCmd() *cobra.Command {
	var (
		gene string
		snps []string
	)

	cmd := &cobra.Command{
		Use:   "prs",
		Short: "Compute a polygenic risk score against the configured IBD dataset",
		Example: `  genoscope prs --gene NOD2
  genoscope prs --snp rs2066844:2 --snp rs11209026`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := prs.Request{Gene: gene, Snps: ParseSnpFlags(snps)}
			return runPrs(cmd.Context(), req)
		},
	}

	cmd.Flags().StringVar(&gene, "gene", "", "Gene symbol; takes priority over --snp")
	cmd.Flags().StringArrayVar(&snps, "snp", nil, "rsID with an optional genotype weight, as rsID[:weight] (repeatable)")

	return cmd
}

// ParseSnpFlags turns "rs123:2" style flags into weighted identifiers
func ParseSnpFlags(values []string) []prs.SnpWeight {
	snps := make([]prs.SnpWeight, 0, len(values))
	for _, v := range values {
		rsId, weight, _ := strings.Cut(v, ":")
		snps = append(snps, prs.SnpWeight{
			RsId:   strings.TrimSpace(rsId),
			Weight: prs.ParseWeight(weight),
		})
	}
	return snps
}

func runPrs(ctx context.Context, req prs.Request) error {
	cfg, err := utils.LoadConfig()
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	store := datasets.NewStore(datasetPaths(cfg), zap.NewNop())
	if err := store.Load(ctx); err != nil {
		return err
	}

	result, err := prs.NewCalculator(store, cfg.Prs.HighThreshold, cfg.Prs.ModerateThreshold).Calculate(req)
	if err != nil {
		return fmt.Errorf("calculating prs: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(prsMvc.NewPrsResponseDto(result))
}
