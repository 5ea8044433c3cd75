package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeForFormulaInjection(t *testing.T) {
	assert.Equal(t, "'=SUM(A1:A9)", SanitizeForFormulaInjection("=SUM(A1:A9)"))
	assert.Equal(t, "'+1234", SanitizeForFormulaInjection("+1234"))
	assert.Equal(t, "CAIXA 12", SanitizeForFormulaInjection("CAIXA 12"))
}

func TestSanitizeMetadataField(t *testing.T) {
	assert.Equal(t, "Maria Silva", SanitizeMetadataField("  <b>Maria Silva</b> "))
	assert.Equal(t, "CAIXA 7", SanitizeMetadataField("CAIXA 7<script>alert(1)</script>"))
}
