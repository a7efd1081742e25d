package selection

import (
	"github.com/packagewjx/instance-selection/internal/kibl"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/stretchr/testify/require"
	"testing"
)

// 两个类别各4个点，a在(0,0)附近，b在(10,10)附近
func toyDataset(t *testing.T) *core.Dataset {
	x := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1}, {0.1, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1}, {10.1, 10.1},
	}
	y := []core.Label{"a", "a", "a", "a", "b", "b", "b", "b"}
	ds, err := core.NewDataset([]string{"x1", "x2"}, core.DefaultLabelColumn, x, y)
	require.NoError(t, err)
	return ds
}

// 在toyDataset的第4行插入一个位于b中间、标签为a的点
func toyDatasetWithOutlier(t *testing.T) *core.Dataset {
	x := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1}, {0.1, 0.1},
		{10.05, 10.05},
		{10, 10}, {10.1, 10}, {10, 10.1}, {10.1, 10.1},
	}
	y := []core.Label{"a", "a", "a", "a", "a", "b", "b", "b", "b"}
	ds, err := core.NewDataset([]string{"x1", "x2"}, core.DefaultLabelColumn, x, y)
	require.NoError(t, err)
	return ds
}

func classifierOptions(k int) kibl.Options {
	opts := kibl.DefaultOptions()
	opts.K = k
	return opts
}
