package pricingplan_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/pricingplan"
)

func TestFeatureEntry_UnmarshalMixedList(t *testing.T) {
	t.Parallel()
	raw := `[
		"  Unlimited projects ",
		{"label": "Storage", "value": "50 GB", "style": "highlight"},
		{"label": "Support", "value": "Email", "type": "muted"}
	]`

	var features []pricingplan.FeatureEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &features))
	require.Len(t, features, 3)

	assert.Equal(t, pricingplan.KindPlainText, features[0].Kind())
	assert.Equal(t, "Unlimited projects", features[0].Text())

	assert.Equal(t, pricingplan.KindLabeledValue, features[1].Kind())
	assert.Equal(t, "Storage", features[1].Label())
	assert.Equal(t, "50 GB", features[1].Value())
	assert.Equal(t, pricingplan.StyleHighlight, features[1].Style())

	assert.Equal(t, pricingplan.StyleMuted, features[2].Style(), "legacy type key is read as style")
	assert.Equal(t, "Support: Email", features[2].String())
}

func TestFeatureEntry_MarshalKeepsShape(t *testing.T) {
	t.Parallel()
	features := []pricingplan.FeatureEntry{
		pricingplan.PlainText("SSO"),
		pricingplan.LabeledValue("Seats", "10", pricingplan.StyleDefault),
	}
	out, err := json.Marshal(features)
	require.NoError(t, err)
	assert.JSONEq(t, `["SSO", {"label": "Seats", "value": "10"}]`, string(out))
}

func TestFeatureEntry_Rejects(t *testing.T) {
	t.Parallel()
	for name, raw := range map[string]string{
		"number":        `42`,
		"list":          `["a"]`,
		"blank text":    `"   "`,
		"missing label": `{"value": "10"}`,
		"unknown style": `{"label": "Seats", "value": "10", "style": "blink"}`,
	} {
		t.Run(name, func(t *testing.T) {
			var f pricingplan.FeatureEntry
			require.Error(t, json.Unmarshal([]byte(raw), &f))
		})
	}
}

func TestPricingPlan_YearlySavings(t *testing.T) {
	t.Parallel()
	p := pricingplan.New("Team", pricingplan.WithPrices("USD", decimal.RequireFromString("10"), decimal.RequireFromString("100")))
	assert.True(t, decimal.RequireFromString("20").Equal(p.YearlySavings()))

	onRequest := pricingplan.New("Enterprise")
	assert.True(t, onRequest.YearlySavings().IsZero())
}
