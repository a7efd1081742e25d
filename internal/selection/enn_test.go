package selection

import (
	"github.com/packagewjx/instance-selection/internal/kibl"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestENNCleanDataUnchanged(t *testing.T) {
	ds := toyDataset(t)
	result, err := ENN(ds, ENNOptions{Classifier: classifierOptions(3)})
	require.NoError(t, err)

	assert.Empty(t, result.Removed)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, result.Kept)
	assert.Equal(t, ds.X, result.X)
	assert.Equal(t, ds.Y, result.Y)
	assert.Equal(t, ds.Columns, result.Dataset.Columns)
}

func TestENNRemovesOutlier(t *testing.T) {
	ds := toyDatasetWithOutlier(t)
	result, err := ENN(ds, ENNOptions{Classifier: classifierOptions(3)})
	require.NoError(t, err)

	assert.Equal(t, []int{4}, result.Removed)
	assert.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, result.Kept)
	require.Equal(t, len(result.X), len(result.Y))
	assert.Equal(t, ds.Len()-len(result.Removed), len(result.X))
	for i, idx := range result.Kept {
		assert.Equal(t, ds.X[idx], result.X[i])
		assert.Equal(t, ds.Y[idx], result.Y[i])
	}

	// 输入数据集不被修改
	assert.Equal(t, 9, ds.Len())
}

func TestENNExcludesQueryItself(t *testing.T) {
	// K=1时若把自己算作近邻，ENN永远不会删除任何行
	ds, err := core.NewDataset(nil, "", [][]float64{{0}, {1}, {2}, {5}}, []core.Label{"a", "a", "a", "b"})
	require.NoError(t, err)
	result, err := ENN(ds, ENNOptions{Classifier: classifierOptions(1)})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, result.Removed)
}

func TestENNInsufficientReference(t *testing.T) {
	ds, err := core.NewDataset(nil, "", [][]float64{{0}}, []core.Label{"a"})
	require.NoError(t, err)
	_, err = ENN(ds, ENNOptions{Classifier: classifierOptions(1)})
	assert.True(t, errors.Is(err, kibl.ErrInsufficientReferenceData))
}
