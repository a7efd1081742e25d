// Package report 汇总每个数据折的实例选择结果
package report

import (
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"io"
	"math"
)

type FoldReport struct {
	Fold       string  `csv:"fold"`
	Algorithm  string  `csv:"algorithm"`
	K          int     `csv:"k"`
	InputRows  int     `csv:"input_rows"`
	OutputRows int     `csv:"output_rows"`
	Reduction  float64 `csv:"reduction"`
	// 无法计算准确率时为NaN，见NoAccuracy
	Accuracy   float64 `csv:"accuracy"`
	Iterations int     `csv:"iterations"`
	Converged  bool    `csv:"converged"`
	Seconds    float64 `csv:"seconds"`
}

// Reduction 为删除的行占输入行的比例
func Reduction(inputRows, outputRows int) float64 {
	if inputRows == 0 {
		return 0
	}
	return 1 - float64(outputRows)/float64(inputRows)
}

// NoAccuracy 标记无法计算的准确率，写出为NaN，不参与汇总
func NoAccuracy() float64 {
	return math.NaN()
}

func Write(out io.Writer, reports []*FoldReport) error {
	return errors.Wrap(gocsv.Marshal(&reports, out), "写出报告错误")
}

func Read(in io.Reader) ([]*FoldReport, error) {
	reports := make([]*FoldReport, 0)
	if err := gocsv.Unmarshal(in, &reports); err != nil {
		return nil, errors.Wrap(err, "读取报告错误")
	}
	return reports, nil
}

type Summary struct {
	Folds           int
	MeanReduction   float64
	StdReduction    float64
	MedianReduction float64
	// 只统计有准确率的数据折，全部没有时均值与标准差为NaN
	AccuracyFolds   int
	MeanAccuracy    float64
	StdAccuracy     float64
	TotalSeconds    float64
}

func Summarize(reports []*FoldReport) (*Summary, error) {
	if len(reports) == 0 {
		return nil, errors.New("没有可汇总的报告")
	}
	reduction := make(stats.Float64Data, len(reports))
	accuracy := make(stats.Float64Data, 0, len(reports))
	seconds := make(stats.Float64Data, len(reports))
	for i, r := range reports {
		reduction[i] = r.Reduction
		if !math.IsNaN(r.Accuracy) {
			accuracy = append(accuracy, r.Accuracy)
		}
		seconds[i] = r.Seconds
	}

	summary := &Summary{Folds: len(reports)}
	var err error
	if summary.MeanReduction, err = stats.Mean(reduction); err != nil {
		return nil, errors.Wrap(err, "计算平均压缩率出错")
	}
	if summary.StdReduction, err = stats.StandardDeviation(reduction); err != nil {
		return nil, errors.Wrap(err, "计算压缩率标准差出错")
	}
	if summary.MedianReduction, err = stats.Median(reduction); err != nil {
		return nil, errors.Wrap(err, "计算压缩率中位数出错")
	}
	summary.AccuracyFolds = len(accuracy)
	summary.MeanAccuracy, summary.StdAccuracy = NoAccuracy(), NoAccuracy()
	if len(accuracy) > 0 {
		if summary.MeanAccuracy, err = stats.Mean(accuracy); err != nil {
			return nil, errors.Wrap(err, "计算平均准确率出错")
		}
		if summary.StdAccuracy, err = stats.StandardDeviation(accuracy); err != nil {
			return nil, errors.Wrap(err, "计算准确率标准差出错")
		}
	}
	if summary.TotalSeconds, err = stats.Sum(seconds); err != nil {
		return nil, errors.Wrap(err, "计算总耗时出错")
	}
	return summary, nil
}
