package controllers

import (
	"testing"

	"github.com/successfulca300-tech/ca-successfull-sub000/testseries"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseTokensMultiInstanceCrossProduct(t *testing.T) {
	def := testseries.TierDef{MultiInstance: true}

	tokens := purchaseTokens(def, []string{"series1", "series3"}, []string{"FR", "AFM"})

	assert.Equal(t, []string{"series1-FR", "series1-AFM", "series3-FR", "series3-AFM"}, tokens)
}

func TestPurchaseTokensSingleInstancePlainSubjects(t *testing.T) {
	def := testseries.TierDef{MultiInstance: false}

	tokens := purchaseTokens(def, nil, []string{"FR", "DT"})

	assert.Equal(t, []string{"FR", "DT"}, tokens)
}
