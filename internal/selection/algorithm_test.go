package selection

import (
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm("mcnn")
	assert.NoError(t, err)
	assert.Equal(t, AlgorithmMCNN, alg)

	alg, err = ParseAlgorithm("enn")
	assert.NoError(t, err)
	assert.Equal(t, AlgorithmENN, alg)

	_, err = ParseAlgorithm("cnn")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}

func TestRun(t *testing.T) {
	ds := toyDatasetWithOutlier(t)

	outcome, err := Run(AlgorithmENN, ds, Options{Classifier: classifierOptions(3)})
	require.NoError(t, err)
	assert.Equal(t, 8, outcome.Reduced.Len())
	assert.Equal(t, outcome.ENN.Kept, outcome.Indices)
	assert.Nil(t, outcome.MCNN)

	outcome, err = Run(AlgorithmMCNN, toyDataset(t), Options{Classifier: classifierOptions(1)})
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Reduced.Len())
	assert.Equal(t, outcome.MCNN.PrototypeIndices, outcome.Indices)
	assert.Nil(t, outcome.ENN)

	_, err = Run(Algorithm("cnn"), ds, Options{})
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}
