package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetUnitSlice(t *testing.T) {
	units, cleanup := GetUnitSlice(16)
	require.Empty(t, units)
	require.GreaterOrEqual(t, cap(units), 16)

	units = append(units, 0xD83D, 0xDE00)
	require.Equal(t, []uint16{0xD83D, 0xDE00}, units)
	cleanup()

	again, cleanup2 := GetUnitSlice(4)
	defer cleanup2()
	require.Empty(t, again, "pooled slices must come back empty")
}

func TestGetUnitSlice_GrowsPastPooledCapacity(t *testing.T) {
	small, cleanup := GetUnitSlice(2)
	cleanup()
	_ = small

	big, cleanup2 := GetUnitSlice(4096)
	defer cleanup2()
	require.GreaterOrEqual(t, cap(big), 4096)
}
