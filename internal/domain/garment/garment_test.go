package garment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{
		"Suit", "Kaunda/Senator Suit", "Trouser", "Shirt", "Dress", "Coat", "Half Coat", "Alteration",
	}, c.Names())

	suit, ok := c.Lookup(" suit ")
	require.True(t, ok)
	require.Len(t, suit.Parts, 3)
	assert.Equal(t, "Trouser", suit.Parts[2].Name)
	assert.Equal(t, []string{"Waist", "Hips", "Thigh", "Knee", "Bottom", "Length", "Crotch"}, suit.Parts[2].Fields)

	kaunda, ok := c.Lookup("Kaunda/Senator Suit")
	require.True(t, ok)
	assert.Equal(t, suit.Parts[2].Fields, kaunda.Parts[1].Fields)

	_, ok = c.Lookup("Kimono")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	c := Default()

	tests := []struct {
		name    string
		garment string
		sheet   map[string]map[string]float64
		wantErr bool
	}{
		{"empty sheet", "Dress", nil, false},
		{"partial sheet", "Suit", map[string]map[string]float64{"Coat": {"Chest": 40, "Sleeve": 25}}, false},
		{"unknown garment", "Kimono", nil, true},
		{"unknown part", "Shirt", map[string]map[string]float64{"Coat": {"Chest": 40}}, true},
		{"unknown field", "Trouser", map[string]map[string]float64{"Trouser": {"Cuff": 3}}, true},
		{"negative value", "Half Coat", map[string]map[string]float64{"Coat": {"Waist": -1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Validate(tt.garment, tt.sheet)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	_, err := Parse([]byte("[]"))
	assert.Error(t, err)

	_, err = Parse([]byte("- type: A\n  parts: []\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("- type: A\n  parts: [{name: X, fields: [Y]}]\n- type: a\n  parts: [{name: X, fields: [Y]}]\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("not: [valid"))
	assert.Error(t, err)
}
