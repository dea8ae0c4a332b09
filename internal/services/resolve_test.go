package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhyangithub/eataway-router/internal/domain"
)

func coordIndex() map[string]domain.CoordinateRecord {
	return map[string]domain.CoordinateRecord{
		"ica söder": {Name: "Ica Söder", Latitude: "59.2629", Longitude: "18.0135"},
		"coop nord": {Name: "Coop Nord", Latitude: "59.2568", Longitude: "17.9859"},
	}
}

func TestResolvePartition(t *testing.T) {
	assignment := []string{"Ica Söder", "Okänd Butik", "COOP NORD"}

	res := Resolve(assignment, coordIndex())

	// Every token lands on exactly one side of the partition.
	require.Len(t, res.Matched, 2)
	require.Len(t, res.Unmatched, 1)
	assert.Equal(t, "Okänd Butik", res.Unmatched[0])

	// Matched stops keep the route table's casing, not the
	// coordinate table's, and coordinates are copied untouched.
	assert.Equal(t, "COOP NORD", res.Matched[1].Name)
	assert.Equal(t, "59.2568", res.Matched[1].Lat)
	assert.Equal(t, "17.9859", res.Matched[1].Lng)
}

func TestResolveExactMatchOnly(t *testing.T) {
	// Near-misses stay unmatched; there is no fuzzy matching.
	res := Resolve([]string{"Ica Söder City", "Ica Söde"}, coordIndex())
	assert.Empty(t, res.Matched)
	assert.Equal(t, []string{"Ica Söder City", "Ica Söde"}, res.Unmatched)
}

func TestResolveEmptyAssignment(t *testing.T) {
	res := Resolve(nil, coordIndex())
	assert.Empty(t, res.Matched)
	assert.Empty(t, res.Unmatched)
}
