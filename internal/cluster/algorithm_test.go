package cluster

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func blobs() [][]float64 {
	return [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
	}
}

func TestGetAlgorithm(t *testing.T) {
	alg, err := GetAlgorithm(KMeans, Options{})
	assert.NoError(t, err)
	assert.Equal(t, KMeansDefaultRound, alg.(*kMeansRunner).round)

	_, err = GetAlgorithm(AlgorithmType("dbscan"), Options{})
	assert.Error(t, err)
}

func TestRunShapes(t *testing.T) {
	for _, typ := range []AlgorithmType{KMeans, Lloyd} {
		alg, err := GetAlgorithm(typ, Options{Round: 10})
		require.NoError(t, err)

		centers, class, err := alg.Run(blobs(), 2)
		require.NoError(t, err, string(typ))
		assert.Equal(t, 2, len(centers), string(typ))
		assert.Equal(t, 6, len(class), string(typ))
		for _, c := range class {
			assert.True(t, c >= 0 && c < 2)
		}
		for _, center := range centers {
			assert.Equal(t, 2, len(center))
		}
	}
}

func TestRunInvalidNumClass(t *testing.T) {
	alg, err := GetAlgorithm(Lloyd, Options{})
	require.NoError(t, err)
	_, _, err = alg.Run(blobs(), 0)
	assert.Error(t, err)
	_, _, err = alg.Run(blobs(), 7)
	assert.Error(t, err)
}
