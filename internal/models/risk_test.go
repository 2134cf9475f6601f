package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRiskAssessment(t *testing.T) {
	def := DefaultRiskAssessment()
	assert.Equal(t, 50.0, def.RiskScore)
	assert.Equal(t, RiskMedium, def.RiskCategory)
	assert.Empty(t, def.Recommendations)
}
