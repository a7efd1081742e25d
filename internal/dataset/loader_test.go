package dataset

import (
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"strings"
	"testing"
)

const sampleCsv = `id,sepal_length,sepal_width,y_true
1,5.1,3.5,setosa
2,7.0,3.2,versicolor
3,?,3.1,versicolor
`

func TestLoadCsv(t *testing.T) {
	loader, err := NewDataLoader(CSV, LoaderOptions{RemoveColumn: []int{0}})
	require.NoError(t, err)

	ds, err := loader.Load(strings.NewReader(sampleCsv))
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 2, ds.Dims())
	assert.Equal(t, []string{"sepal_length", "sepal_width"}, ds.Columns)
	assert.Equal(t, "y_true", ds.LabelColumn)
	assert.Equal(t, []core.Label{"setosa", "versicolor", "versicolor"}, ds.Y)
	assert.Equal(t, []float64{5.1, 3.5}, ds.X[0])
	assert.True(t, math.IsNaN(ds.X[2][0]))
}

func TestLoadCsvLabelColumn(t *testing.T) {
	data := "class,a,b\nx,1,2\ny,3,4\n"
	loader, err := NewDataLoader(CSV, LoaderOptions{LabelColumn: "class"})
	require.NoError(t, err)
	ds, err := loader.Load(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ds.Columns)
	assert.Equal(t, []core.Label{"x", "y"}, ds.Y)
	assert.Equal(t, []float64{3, 4}, ds.X[1])

	loader, _ = NewDataLoader(CSV, LoaderOptions{LabelColumn: "target"})
	_, err = loader.Load(strings.NewReader(data))
	assert.Error(t, err)

	loader, _ = NewDataLoader(CSV, LoaderOptions{LabelColumn: "class", RemoveColumn: []int{0}})
	_, err = loader.Load(strings.NewReader(data))
	assert.Error(t, err)
}

func TestLoadCsvErrors(t *testing.T) {
	loader, err := NewDataLoader(CSV, LoaderOptions{})
	require.NoError(t, err)

	_, err = loader.Load(strings.NewReader(""))
	assert.Error(t, err)

	_, err = loader.Load(strings.NewReader("a,y\nabc,x\n"))
	assert.Error(t, err)

	_, err = NewDataLoader(DataFormat("arff"), LoaderOptions{})
	assert.Error(t, err)

	f, err := ParseDataFormat("CSV")
	assert.NoError(t, err)
	assert.Equal(t, CSV, f)
}
