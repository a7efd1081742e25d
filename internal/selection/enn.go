package selection

import (
	"github.com/packagewjx/instance-selection/internal/kibl"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
)

type ENNOptions struct {
	Classifier kibl.Options
}

// ENNResult 中X与Y按行对齐，第i行对应输入数据集的第Kept[i]行
type ENNResult struct {
	X       [][]float64
	Y       []core.Label
	Dataset *core.Dataset
	Kept    []int
	Removed []int
}

// ENN 执行编辑近邻算法：以整个数据集为参考集对自身分类，删除误分类的实例。
// 分类时查询行不计为自己的近邻，因此K个近邻都来自其他实例。
func ENN(ds *core.Dataset, opts ENNOptions) (*ENNResult, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	clsOpts := opts.Classifier
	clsOpts.ExcludeSelf = true

	classified, err := kibl.Classify(ds, ds, clsOpts)
	if err != nil {
		return nil, errors.Wrap(err, "ENN分类出错")
	}

	removed := mismatchIndices(ds.Y, classified.Predictions)
	edited, kept, err := ds.Without(removed)
	if err != nil {
		return nil, err
	}

	return &ENNResult{
		X:       edited.X,
		Y:       edited.Y,
		Dataset: edited,
		Kept:    kept,
		Removed: removed,
	}, nil
}
