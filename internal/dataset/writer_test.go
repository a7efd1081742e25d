package dataset

import (
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestOutputResult(t *testing.T) {
	ds, err := core.NewDataset([]string{"a", "b"}, "y_true", [][]float64{{1, 2}, {4, 5}}, []core.Label{"x", "y"})
	require.NoError(t, err)

	builder := &strings.Builder{}
	err = OutputResult(ds, builder, 2)
	assert.NoError(t, err)
	assert.Equal(t, "a,b,y_true\n1.00,2.00,x\n4.00,5.00,y\n", builder.String())

	loader, _ := NewDataLoader(CSV, LoaderOptions{})
	loaded, err := loader.Load(strings.NewReader(builder.String()))
	assert.NoError(t, err)
	assert.Equal(t, ds, loaded)
}

func TestOutputResultWithoutColumns(t *testing.T) {
	ds, err := core.NewDataset(nil, "", [][]float64{{1.5}}, []core.Label{"x"})
	require.NoError(t, err)
	builder := &strings.Builder{}
	assert.NoError(t, OutputResult(ds, builder, 1))
	assert.Equal(t, "x0,y_true\n1.5,x\n", builder.String())
}

func TestOutputSplit(t *testing.T) {
	ds, err := core.NewDataset([]string{"a", "b"}, "class", [][]float64{{1, 2}, {4, 5}}, []core.Label{"x", "y"})
	require.NoError(t, err)

	features := &strings.Builder{}
	labels := &strings.Builder{}
	err = OutputSplit(ds, features, labels, 1)
	assert.NoError(t, err)
	assert.Equal(t, "a,b\n1.0,2.0\n4.0,5.0\n", features.String())
	assert.Equal(t, "class\nx\ny\n", labels.String())
}

func TestOutputMatrix(t *testing.T) {
	builder := &strings.Builder{}
	err := OutputMatrix([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, builder, 2)
	assert.NoError(t, err)
	assert.Equal(t, "1.00,2.00,3.00\n4.00,5.00,6.00\n7.00,8.00,9.00\n", builder.String())
}
