package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndLookups(t *testing.T) {
	require.NoError(t, Init())

	assert.NotEmpty(t, GetCountries())
	assert.True(t, IsKnownCountry("PT"))
	assert.True(t, IsKnownCountry("ES"))
	assert.False(t, IsKnownCountry("XX"))

	pt := GetRegionsByCountry("PT")
	require.NotEmpty(t, pt)
	for _, r := range pt {
		assert.Equal(t, "PT", r.CountryCode)
	}

	assert.Nil(t, GetRegionsByCountry("XX"))
}
