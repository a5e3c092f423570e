package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDietaryType_Closed(t *testing.T) {
	for _, d := range DietaryTypes {
		parsed, err := ParseDietaryType(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
		assert.NotEmpty(t, d.Label())
	}

	_, err := ParseDietaryType("pescatarian")
	assert.Error(t, err)

	_, err = DietaryType("").Value()
	assert.Error(t, err, "zero value is never stored")

	var d DietaryType
	assert.NoError(t, d.Scan([]byte("gluten_free")))
	assert.Equal(t, DietaryGlutenFree, d)
	assert.Error(t, d.Scan("keto"))
	assert.Error(t, d.Scan(42))

	assert.Error(t, json.Unmarshal([]byte(`"keto"`), &d))
	assert.Equal(t, "🍽️ Regular", DietaryNone.Label())
}

func TestPrice_TwoDecimals(t *testing.T) {
	p := NewPrice(decimal.RequireFromString("12.5"))
	assert.Equal(t, "12.50", p.String())

	b, err := json.Marshal(struct {
		Price Price `json:"price"`
	}{MustPrice("3.456")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"3.46"}`, string(b))

	v, err := p.Value()
	require.NoError(t, err)
	assert.Equal(t, "12.50", v)

	var scanned Price
	require.NoError(t, scanned.Scan(9.99))
	assert.Equal(t, "9.99", scanned.String())
}
