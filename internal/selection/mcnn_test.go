package selection

import (
	"github.com/packagewjx/instance-selection/internal/kibl"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"math/rand"
	"testing"
)

func TestMCNNToyDataset(t *testing.T) {
	ds := toyDataset(t)
	result, err := MCNN(ds, MCNNOptions{Classifier: classifierOptions(1)})
	require.NoError(t, err)

	assert.LessOrEqual(t, result.Iterations, 2)
	assert.Equal(t, 2, result.Prototypes.Len())
	assert.ElementsMatch(t, []core.Label{"a", "b"}, result.Prototypes.Y)
	assert.Equal(t, result.SeedIndices, result.PrototypeIndices)
	assert.Equal(t, ds.Columns, result.Prototypes.Columns)
}

func TestMCNNSeparableTerminates(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	x := make([][]float64, 0, 100)
	y := make([]core.Label, 0, 100)
	for i := 0; i < 50; i++ {
		x = append(x, []float64{rnd.Float64(), rnd.Float64()})
		y = append(y, "low")
		x = append(x, []float64{5 + rnd.Float64(), 5 + rnd.Float64()})
		y = append(y, "high")
	}
	ds, err := core.NewDataset(nil, core.DefaultLabelColumn, x, y)
	require.NoError(t, err)

	result, err := MCNN(ds, MCNNOptions{Classifier: classifierOptions(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, 2, result.Prototypes.Len())
}

func TestSeedPrototypesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	labels := []core.Label{"a", "b", "c"}
	x := make([][]float64, 60)
	y := make([]core.Label, len(x))
	for i := range x {
		x[i] = []float64{rnd.NormFloat64(), rnd.NormFloat64() * 3, rnd.Float64()}
		y[i] = labels[i%len(labels)]
	}
	ds, err := core.NewDataset(nil, core.DefaultLabelColumn, x, y)
	require.NoError(t, err)

	classes := ds.Classes()
	seeds, err := seedPrototypes(ds, classes)
	require.NoError(t, err)
	require.Equal(t, len(labels), len(seeds))

	for ci, label := range classes {
		centroid := make([]float64, 3)
		count := 0
		for i := range x {
			if y[i] != label {
				continue
			}
			for j := range centroid {
				centroid[j] += x[i][j]
			}
			count++
		}
		for j := range centroid {
			centroid[j] /= float64(count)
		}

		expected := -1
		minDistance := math.Inf(1)
		for i := range x {
			if y[i] != label {
				continue
			}
			sum := 0.0
			for j := range centroid {
				sum += (x[i][j] - centroid[j]) * (x[i][j] - centroid[j])
			}
			if d := math.Sqrt(sum); d < minDistance {
				expected = i
				minDistance = d
			}
		}

		assert.Equal(t, label, ds.Y[seeds[ci]])
		assert.Equal(t, expected, seeds[ci])
	}
}

func TestSeedTieFirstOccurrence(t *testing.T) {
	ds, err := core.NewDataset(nil, "", [][]float64{{0}, {2}, {-2}, {4}}, []core.Label{"a", "b", "a", "b"})
	require.NoError(t, err)
	seeds, err := seedPrototypes(ds, ds.Classes())
	require.NoError(t, err)
	// a的中心为-1，第0行与第2行距离都是1；b的中心为3，第1行与第3行距离都是1
	assert.Equal(t, []int{0, 1}, seeds)
}

func TestMCNNMonotonicGrowth(t *testing.T) {
	x := make([][]float64, 12)
	for i := range x {
		x[i] = []float64{float64(i)}
	}
	y := []core.Label{"a", "a", "a", "b", "b", "b", "a", "a", "a", "b", "b", "b"}
	ds, err := core.NewDataset([]string{"x"}, core.DefaultLabelColumn, x, y)
	require.NoError(t, err)

	result, err := MCNN(ds, MCNNOptions{Classifier: classifierOptions(1)})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Iterations)
	assert.Equal(t, []int{2, 4, 6}, result.SizeHistory)
	for i := 1; i < len(result.SizeHistory); i++ {
		assert.GreaterOrEqual(t, result.SizeHistory[i], result.SizeHistory[i-1])
	}
	assert.Equal(t, result.SeedIndices, result.GrownIndices[:len(result.SeedIndices)])
	assert.Equal(t, []int{2, 5, 7, 3, 6, 10}, result.GrownIndices)
	assert.Equal(t, result.GrownIndices, result.PrototypeIndices)

	// 原型与输入数据集的行一一对应
	for i, idx := range result.PrototypeIndices {
		assert.Equal(t, ds.X[idx], result.Prototypes.X[i])
		assert.Equal(t, ds.Y[idx], result.Prototypes.Y[i])
	}
}

func TestMCNNPruningKeepsDistinctPrototypes(t *testing.T) {
	x := make([][]float64, 12)
	for i := range x {
		x[i] = []float64{float64(i)}
	}
	y := []core.Label{"a", "a", "a", "b", "b", "b", "a", "a", "a", "b", "b", "b"}
	ds, err := core.NewDataset([]string{"x"}, core.DefaultLabelColumn, x, y)
	require.NoError(t, err)

	// K=3时细化循环会重复加入同一个实例
	result, err := MCNN(ds, MCNNOptions{Classifier: classifierOptions(3)})
	require.NoError(t, err)
	assert.Equal(t, 6, result.Iterations)
	assert.Equal(t, []int{2, 4, 5, 7, 8, 9}, result.SizeHistory)
	assert.Equal(t, []int{2, 5, 7, 3, 2, 7, 3, 10, 10}, result.GrownIndices)

	assert.Equal(t, []int{2, 5, 7, 3, 10}, result.PrototypeIndices)
	seen := make(map[int]bool)
	for _, idx := range result.PrototypeIndices {
		assert.False(t, seen[idx], "原型%d重复", idx)
		seen[idx] = true
	}
	assert.Equal(t, len(result.PrototypeIndices), result.Prototypes.Len())
}

func TestParticipatingPrototypesDropsUnused(t *testing.T) {
	ds, err := core.NewDataset(nil, "", [][]float64{{0}, {1}, {10}, {11}}, []core.Label{"a", "a", "b", "b"})
	require.NoError(t, err)

	participating, err := participatingPrototypes(ds, []int{0, 0, 2}, classifierOptions(1))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, participating)
}

func TestMCNNNonConvergence(t *testing.T) {
	// 特征相同、标签不同的两行永远无法同时分类正确
	ds, err := core.NewDataset(nil, "", [][]float64{{0}, {0}}, []core.Label{"a", "b"})
	require.NoError(t, err)

	_, err = MCNN(ds, MCNNOptions{Classifier: classifierOptions(1), MaxIterations: 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonConvergence))

	var nce *NonConvergenceError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, 4, nce.Iterations)
	assert.Equal(t, 1, nce.Mismatches)
	assert.Equal(t, 1, nce.BestMismatches)
	assert.Equal(t, []int{0, 1}, nce.PrototypeIndices)
	assert.Equal(t, 2, nce.Prototypes.Len())

	// 默认最大迭代次数为数据集行数
	_, err = MCNN(ds, MCNNOptions{Classifier: classifierOptions(1)})
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, 2, nce.Iterations)
}

func TestMCNNErrors(t *testing.T) {
	empty, err := core.NewDataset(nil, "", [][]float64{}, []core.Label{})
	require.NoError(t, err)
	_, err = MCNN(empty, MCNNOptions{Classifier: classifierOptions(1)})
	assert.True(t, errors.Is(err, kibl.ErrInsufficientReferenceData))

	ds := toyDataset(t)
	_, err = seedPrototypes(ds, []core.Label{"a", "z"})
	assert.True(t, errors.Is(err, ErrEmptyClassPartition))

	misaligned := &core.Dataset{X: [][]float64{{0}}, Y: []core.Label{}}
	_, err = MCNN(misaligned, MCNNOptions{Classifier: classifierOptions(1)})
	assert.True(t, errors.Is(err, core.ErrMisaligned))
}
