package cluster

import (
	"fmt"
	"github.com/biogo/cluster/kmeans"
	"github.com/packagewjx/kmeanspp"
	"github.com/pkg/errors"
)

// 聚类算法接口
type Algorithm interface {
	Run(data [][]float64, numClass int) (centers [][]float64, class []int, err error)
}

type AlgorithmType string

const (
	KMeans = AlgorithmType("kmeans")
	Lloyd  = AlgorithmType("lloyd")
)

const (
	KMeansDefaultRound = 30
)

type Options struct {
	// K-Means++的迭代轮次
	Round int
}

func GetAlgorithm(algorithmType AlgorithmType, opts Options) (Algorithm, error) {
	switch algorithmType {
	case KMeans:
		round := opts.Round
		if round <= 0 {
			round = KMeansDefaultRound
		}
		return &kMeansRunner{round: round}, nil
	case Lloyd:
		return &lloydRunner{}, nil
	default:
		return nil, fmt.Errorf("不支持的聚类算法%s，可选值：kmeans、lloyd", algorithmType)
	}
}

func checkInput(data [][]float64, numClass int) error {
	if numClass < 1 {
		return fmt.Errorf("类数量必须大于0，当前为%d", numClass)
	}
	if numClass > len(data) {
		return fmt.Errorf("类数量%d大于数据量%d", numClass, len(data))
	}
	return nil
}

type kMeansRunner struct {
	round int
}

func (k *kMeansRunner) Run(data [][]float64, numClass int) (centers [][]float64, class []int, err error) {
	if err = checkInput(data, numClass); err != nil {
		return nil, nil, err
	}

	data32 := make([][]float32, len(data))
	for i, datum := range data {
		data32[i] = make([]float32, len(datum))
		for j, f := range datum {
			data32[i][j] = float32(f)
		}
	}

	centers32, class := kmeanspp.KMeansPP(numClass, k.round, data32)

	centers = make([][]float64, len(centers32))
	for i, center := range centers32 {
		centers[i] = make([]float64, len(center))
		for j, f := range center {
			centers[i][j] = float64(f)
		}
	}
	return centers, class, nil
}

type rows [][]float64

func (r rows) Len() int {
	return len(r)
}

// Values 供github.com/biogo/cluster/kmeans使用
func (r rows) Values(i int) []float64 {
	return r[i]
}

type lloydRunner struct {
}

func (l *lloydRunner) Run(data [][]float64, numClass int) (centers [][]float64, class []int, err error) {
	if err = checkInput(data, numClass); err != nil {
		return nil, nil, err
	}

	trainer, err := kmeans.New(rows(data))
	if err != nil {
		return nil, nil, errors.Wrap(err, "初始化K-Means出错")
	}
	trainer.Seed(numClass)
	if err = trainer.Cluster(); err != nil {
		return nil, nil, errors.Wrap(err, "K-Means聚类出错")
	}

	class = make([]int, len(data))
	for ci, c := range trainer.Centers() {
		centers = append(centers, append([]float64(nil), c.V()...))
		for _, member := range c.Members() {
			class[member] = ci
		}
	}
	return centers, class, nil
}
