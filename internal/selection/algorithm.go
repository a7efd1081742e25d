package selection

import (
	"fmt"
	"github.com/packagewjx/instance-selection/internal/kibl"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
)

type Algorithm string

const (
	AlgorithmMCNN = Algorithm("mcnn")
	AlgorithmENN  = Algorithm("enn")
)

func ParseAlgorithm(s string) (Algorithm, error) {
	switch alg := Algorithm(s); alg {
	case AlgorithmMCNN, AlgorithmENN:
		return alg, nil
	default:
		return "", errors.Wrap(ErrUnknownAlgorithm, fmt.Sprintf("%s，可选值：mcnn、enn", s))
	}
}

type Options struct {
	Classifier    kibl.Options
	MaxIterations int
}

// Outcome 是两种算法的统一结果。Indices为Reduced每一行在输入数据集中的行号
type Outcome struct {
	Algorithm  Algorithm
	Reduced    *core.Dataset
	Indices    []int
	Iterations int
	MCNN       *MCNNResult
	ENN        *ENNResult
}

func Run(alg Algorithm, ds *core.Dataset, opts Options) (*Outcome, error) {
	switch alg {
	case AlgorithmMCNN:
		result, err := MCNN(ds, MCNNOptions{
			Classifier:    opts.Classifier,
			MaxIterations: opts.MaxIterations,
		})
		if err != nil {
			return nil, err
		}
		return &Outcome{
			Algorithm:  alg,
			Reduced:    result.Prototypes,
			Indices:    result.PrototypeIndices,
			Iterations: result.Iterations,
			MCNN:       result,
		}, nil
	case AlgorithmENN:
		result, err := ENN(ds, ENNOptions{Classifier: opts.Classifier})
		if err != nil {
			return nil, err
		}
		return &Outcome{
			Algorithm:  alg,
			Reduced:    result.Dataset,
			Indices:    result.Kept,
			Iterations: 1,
			ENN:        result,
		}, nil
	default:
		return nil, errors.Wrap(ErrUnknownAlgorithm, string(alg))
	}
}
