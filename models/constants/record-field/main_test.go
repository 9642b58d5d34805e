package recordField

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "clinicalsignificance", Normalize(" Clinical Significance "))
	assert.Equal(t, "orvalue", Normalize("OR_value"))
	assert.Equal(t, "", Normalize("--"))
}

func TestMatches(t *testing.T) {
	t.Run("should accept every alias of a field", func(t *testing.T) {
		for _, field := range All() {
			assert.NotEmpty(t, Aliases(field), field)
			for _, alias := range Aliases(field) {
				assert.True(t, Matches(field, alias), "%s should match %s", field, alias)
			}
		}
	})

	t.Run("should match headers as written in the dataset files", func(t *testing.T) {
		assert.True(t, Matches(RsId, "rsID"))
		assert.True(t, Matches(Phenotype, "Disease"))
		assert.True(t, Matches(RiskAllele, "Risk Allele"))
		assert.True(t, Matches(OddsRatio, "orValue"))
	})

	t.Run("should not match another field's header", func(t *testing.T) {
		assert.False(t, Matches(Gene, "rsID"))
		assert.False(t, Matches(Beta, "orValue"))
	})
}
