package preprocess

import (
	"github.com/packagewjx/instance-selection/internal/dataset"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
	"io"
	"math"
)

func MinMax() Preprocessor {
	return &minMax{}
}

type minMax struct {
}

// Preprocess 将每一列线性缩放到[0,1]，常数列置0
func (n minMax) Preprocess(ds *core.Dataset) {
	for fi := 0; fi < ds.Dims(); fi++ {
		min := math.Inf(1)
		max := math.Inf(-1)
		for _, row := range ds.X {
			if row[fi] < min {
				min = row[fi]
			}
			if row[fi] > max {
				max = row[fi]
			}
		}

		span := max - min
		for _, row := range ds.X {
			if span == 0 {
				row[fi] = 0
			} else {
				row[fi] = (row[fi] - min) / span
			}
		}
	}
}

// NormalizeDataset 读取数据集，填充缺失值并标准化后写出
func NormalizeDataset(in io.Reader, out io.Writer, opts dataset.LoaderOptions, precision int) error {
	loader, err := dataset.NewDataLoader(dataset.CSV, opts)
	if err != nil {
		return err
	}
	ds, err := loader.Load(in)
	if err != nil {
		return errors.Wrap(err, "读取数据失败")
	}

	Default().Preprocess(ds)

	return errors.Wrap(dataset.OutputResult(ds, out, precision), "写出数据失败")
}
