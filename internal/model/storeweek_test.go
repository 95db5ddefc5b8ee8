package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorFollowsFeatureNames(t *testing.T) {
	w := StoreWeek{
		SalesLag1:   100,
		SalesLag2:   90,
		SalesMA3:    95,
		SalesMA7:    92,
		FuelPrice:   3.0,
		Temperature: 60,
		CPI:         210,
		Week:        5,
		Month:       2,
		Day:         3,
		IsHoliday:   1,
	}

	names := FeatureNames()
	vec := w.Vector()
	require.Len(t, vec, len(names))

	idx, ok := FeatureIndex(FeatureFuelPrice)
	require.True(t, ok)
	assert.Equal(t, 3.0, vec[idx])

	idx, ok = FeatureIndex(FeatureIsHoliday)
	require.True(t, ok)
	assert.Equal(t, 1.0, vec[idx])
	assert.Equal(t, len(names)-1, idx)
}

func TestFeatureIndexUnknown(t *testing.T) {
	idx, ok := FeatureIndex("Markdown1")
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}

func TestFeatureNamesReturnsCopy(t *testing.T) {
	names := FeatureNames()
	names[0] = "mutated"
	assert.Equal(t, FeatureSalesLag1, FeatureNames()[0])
}
