package datasets

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"genoscope/api/models"
	"genoscope/api/models/conditions"
	ds "genoscope/api/models/constants/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("should name every blank required field, in order", func(t *testing.T) {
		err := Validate(models.ClinvarSubmission{RsId: "rs1", Phenotype: " ", Chromosome: "1"})

		var missing *conditions.MissingFieldsError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{"gene", "phenotype", "clinical_significance"}, missing.Fields)
		assert.Equal(t, "Required fields missing: gene, phenotype, clinical_significance", err.Error())
	})

	t.Run("should not require the dataset link", func(t *testing.T) {
		err := Validate(models.RiskSubmission{RsId: "rs1", Gene: "NOD2", RiskAllele: "T", OddsRatio: "1.2"})
		assert.NoError(t, err)
	})
}

func TestDecodeSubmission(t *testing.T) {
	t.Run("should accept numbers where strings are expected", func(t *testing.T) {
		s, err := DecodeSubmission(ds.Ibd, map[string]interface{}{
			"rsid":        "rs1",
			"gene":        "NOD2",
			"risk_allele": "T",
			"odds_ratio":  1.5,
		})
		require.NoError(t, err)

		risk, ok := s.(*models.RiskSubmission)
		require.True(t, ok)
		assert.Equal(t, "1.5", risk.OddsRatio)
	})

	t.Run("should reject values that cannot be read as text", func(t *testing.T) {
		for _, gene := range []interface{}{
			[]interface{}{"NOD2"},
			map[string]interface{}{"symbol": "NOD2"},
		} {
			_, err := DecodeSubmission(ds.Clinvar, map[string]interface{}{"rsid": "rs1", "gene": gene})

			var invalid *conditions.InvalidSubmissionError
			require.True(t, errors.As(err, &invalid), "%v", gene)
			assert.Equal(t, "InvalidSubmission", conditions.NameOf(err))
		}
	})

	t.Run("should reject unknown datasets", func(t *testing.T) {
		_, err := DecodeSubmission("gwas", map[string]interface{}{})
		assert.ErrorIs(t, err, conditions.ErrInvalidDataset)
	})
}

func TestAppend(t *testing.T) {
	t.Run("should refuse writes before the datasets are loaded", func(t *testing.T) {
		store, _ := setUpStore(t, clinvarFixture, ibdFixture)

		_, err := store.Append(ds.Clinvar, map[string]interface{}{"rsid": "rs1"})
		assert.ErrorIs(t, err, conditions.ErrDatasetsNotReady)
	})

	t.Run("should reject incomplete submissions without touching the dataset", func(t *testing.T) {
		store, paths := setUpLoadedStore(t)
		before, err := os.ReadFile(paths[ds.Clinvar])
		require.NoError(t, err)

		_, err = store.Append(ds.Clinvar, map[string]interface{}{
			"rsid":                  "rs999",
			"phenotype":             "Lynch syndrome",
			"clinical_significance": "Pathogenic",
			"chromosome":            "3",
		})

		var missing *conditions.MissingFieldsError
		require.True(t, errors.As(err, &missing))
		assert.Contains(t, missing.Fields, "gene")

		count, err := store.Count(ds.Clinvar)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		after, err := os.ReadFile(paths[ds.Clinvar])
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("should make appended records visible to queries and persist them", func(t *testing.T) {
		store, paths := setUpLoadedStore(t)

		record, err := store.Append(ds.Clinvar, map[string]interface{}{
			"rsid":                  " rs999 ",
			"gene":                  "MLH1",
			"phenotype":             "Lynch syndrome",
			"clinical_significance": "Pathogenic",
			"chromosome":            3,
			"dataset_link":          "https://example.org/rs999",
		})
		require.NoError(t, err)
		assert.Equal(t, "rs999", record["rsid"])
		assert.Equal(t, "3", record["chromosome"])

		// the file has no dataset link column
		_, hasLink := record["dataset_link"]
		assert.False(t, hasLink)
		assert.Len(t, record, 5)

		found, err := store.ByIdentifier(ds.Clinvar, "RS999")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "MLH1", found[0]["gene"])

		content, err := os.ReadFile(paths[ds.Clinvar])
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(string(content),
			"\"rs999\",\"MLH1\",\"Lynch syndrome\",\"Pathogenic\",\"3\"\n"))

		reloaded := NewStore(paths, nil)
		require.NoError(t, reloaded.Load(context.Background()))
		count, err := reloaded.Count(ds.Clinvar)
		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("should map submitted fields onto the file's own column names", func(t *testing.T) {
		store, _ := setUpLoadedStore(t)

		record, err := store.Append(ds.Ibd, map[string]interface{}{
			"rsid":        "rs400",
			"gene":        "CARD9",
			"risk_allele": "C",
			"odds_ratio":  "1.3",
		})
		require.NoError(t, err)

		assert.Equal(t, models.Record{
			"rsID":        "rs400",
			"Gene":        "CARD9",
			"Disease":     "",
			"Risk Allele": "C",
			"orValue":     "1.3",
			"beta":        "",
		}, record)
	})

	t.Run("should write the canonical header into a whitespace-only file", func(t *testing.T) {
		store, paths := setUpStore(t, clinvarFixture, "\n")
		require.NoError(t, store.Load(context.Background()))

		for _, rsid := range []string{"rs1", "rs2"} {
			_, err := store.Append(ds.Ibd, map[string]interface{}{
				"rsid":        rsid,
				"gene":        "NOD2",
				"risk_allele": "T",
				"odds_ratio":  "1.2",
			})
			require.NoError(t, err)
		}

		reloaded, _ := setUpStore(t, clinvarFixture, "")
		reloaded.paths[ds.Ibd] = paths[ds.Ibd]
		require.NoError(t, reloaded.Load(context.Background()))

		records, err := reloaded.All(ds.Ibd)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "rs1", records[0]["rsid"])
		assert.Equal(t, "rs2", records[1]["rsid"])
	})

	t.Run("should create the file with a canonical header when it is missing", func(t *testing.T) {
		store, paths := setUpStore(t, clinvarFixture, "")
		require.NoError(t, store.Load(context.Background()))

		_, err := store.Append(ds.Ibd, map[string]interface{}{
			"rsid":        "rs1",
			"gene":        "NOD2",
			"risk_allele": "T",
			"odds_ratio":  "1.2",
		})
		require.NoError(t, err)

		content, err := os.ReadFile(paths[ds.Ibd])
		require.NoError(t, err)
		assert.Equal(t,
			"\"rsid\",\"gene\",\"risk_allele\",\"odds_ratio\",\"dataset_link\"\n"+
				"\"rs1\",\"NOD2\",\"T\",\"1.2\",\"\"\n",
			string(content))
	})

	t.Run("should not keep the record in memory when the file write fails", func(t *testing.T) {
		store, _ := setUpLoadedStore(t)
		// a directory in place of the file makes the write fail
		store.paths[ds.Clinvar] = t.TempDir()

		_, err := store.Append(ds.Clinvar, map[string]interface{}{
			"rsid":                  "rs999",
			"gene":                  "MLH1",
			"phenotype":             "Lynch syndrome",
			"clinical_significance": "Pathogenic",
			"chromosome":            "3",
		})
		assert.Error(t, err)

		count, err := store.Count(ds.Clinvar)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}
