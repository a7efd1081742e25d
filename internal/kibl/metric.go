package kibl

import (
	"fmt"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"math"
)

type Metric string

const (
	Euclidean Metric = "euclidean"
	Manhattan Metric = "manhattan"
	Chebyshev Metric = "chebyshev"
	Minkowski Metric = "minkowski"
	Cosine    Metric = "cosine"
)

type DistanceFunc func(a, b []float64) float64

func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case Euclidean, Manhattan, Chebyshev, Minkowski, Cosine:
		return m, nil
	default:
		return "", errors.Wrap(ErrInvalidOptions, fmt.Sprintf("不支持的距离度量%s", s))
	}
}

// Func 返回度量对应的距离函数。p仅对Minkowski有效，且必须不小于1
func (m Metric) Func(p float64) (DistanceFunc, error) {
	switch m {
	case Euclidean:
		return func(a, b []float64) float64 {
			return floats.Distance(a, b, 2)
		}, nil
	case Manhattan:
		return func(a, b []float64) float64 {
			return floats.Distance(a, b, 1)
		}, nil
	case Chebyshev:
		return func(a, b []float64) float64 {
			return floats.Distance(a, b, math.Inf(1))
		}, nil
	case Minkowski:
		if p < 1 {
			return nil, errors.Wrap(ErrInvalidOptions, fmt.Sprintf("Minkowski参数p必须不小于1，当前为%v", p))
		}
		return func(a, b []float64) float64 {
			return floats.Distance(a, b, p)
		}, nil
	case Cosine:
		return cosineDistance, nil
	default:
		return nil, errors.Wrap(ErrInvalidOptions, fmt.Sprintf("不支持的距离度量%s", m))
	}
}

// 零向量没有方向：两个零向量距离为0，只有一个为零向量时距离为1
func cosineDistance(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		if normA == normB {
			return 0
		}
		return 1
	}
	return 1 - floats.Dot(a, b)/(normA*normB)
}
