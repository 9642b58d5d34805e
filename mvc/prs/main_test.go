package prs

import (
	"testing"

	prsService "genoscope/api/services/prs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	t.Run("should read weights given as numbers or numeric strings", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"snps":[
			{"rsID":"rs100","genotypeWeight":"2"},
			{"rsID":"rs200","genotypeWeight":0.5},
			{"rsID":"rs300"},
			{"rsID":"rs400","genotypeWeight":"two"},
			"rs500"
		]}`))
		require.NoError(t, err)

		assert.Equal(t, "", req.Gene)
		assert.Equal(t, []prsService.SnpWeight{
			{RsId: "rs100", Weight: 2},
			{RsId: "rs200", Weight: 0.5},
			{RsId: "rs300", Weight: 1},
			{RsId: "rs400", Weight: 1},
			{RsId: "rs500", Weight: 1},
		}, req.Snps)
	})

	t.Run("should read the gene", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"gene":" NOD2 "}`))
		require.NoError(t, err)

		assert.Equal(t, "NOD2", req.Gene)
		assert.Empty(t, req.Snps)
	})

	t.Run("should accept an empty body", func(t *testing.T) {
		req, err := ParseRequest(nil)
		require.NoError(t, err)
		assert.Equal(t, "", req.Gene)
		assert.Empty(t, req.Snps)
	})

	t.Run("should reject malformed bodies", func(t *testing.T) {
		_, err := ParseRequest([]byte(`{"snps":`))
		assert.Error(t, err)

		_, err = ParseRequest([]byte(`{"snps":"rs100"}`))
		assert.Error(t, err)
	})
}

func TestNewPrsResponseDto(t *testing.T) {
	dto := NewPrsResponseDto(&prsService.Result{
		Total:     0.6,
		RiskLevel: "Moderate",
		Details: []prsService.Detail{
			{RsId: "rs100", Score: 0.6},
			{RsId: "rs999", Error: prsService.RsIdNotFound},
		},
	})

	assert.Equal(t, "0.60", dto.TotalPRS)
	assert.Equal(t, "0.60", dto.Details[0].PrsScore)
	assert.Equal(t, "", dto.Details[0].Error)
	assert.Equal(t, "", dto.Details[1].PrsScore)
	assert.Equal(t, prsService.RsIdNotFound, dto.Details[1].Error)
}
