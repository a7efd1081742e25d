package dataset

import (
	"encoding/csv"
	"fmt"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
	"io"
	"strconv"
)

const DefaultOutputPrecision = 6

func featureHeader(ds *core.Dataset) []string {
	if len(ds.Columns) > 0 {
		return append([]string(nil), ds.Columns...)
	}
	header := make([]string, ds.Dims())
	for i := range header {
		header[i] = fmt.Sprintf("x%d", i)
	}
	return header
}

func labelHeader(ds *core.Dataset) string {
	if ds.LabelColumn == "" {
		return core.DefaultLabelColumn
	}
	return ds.LabelColumn
}

func formatRow(row []float64, precision int) []string {
	record := make([]string, len(row))
	for i, f := range row {
		record[i] = strconv.FormatFloat(f, 'f', precision, 64)
	}
	return record
}

// OutputResult 写出数据集，标签列在最后
func OutputResult(ds *core.Dataset, output io.Writer, precision int) error {
	writer := csv.NewWriter(output)
	if err := writer.Write(append(featureHeader(ds), labelHeader(ds))); err != nil {
		return errors.Wrap(err, "写入表头错误")
	}
	for i, datum := range ds.X {
		record := append(formatRow(datum, precision), string(ds.Y[i]))
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d条数据错误", i))
		}
	}

	writer.Flush()
	return writer.Error()
}

// OutputSplit 将特征与标签分别写出到两个文件，两者按行对齐
func OutputSplit(ds *core.Dataset, features, labels io.Writer, precision int) error {
	fw := csv.NewWriter(features)
	lw := csv.NewWriter(labels)
	if err := fw.Write(featureHeader(ds)); err != nil {
		return errors.Wrap(err, "写入特征表头错误")
	}
	if err := lw.Write([]string{labelHeader(ds)}); err != nil {
		return errors.Wrap(err, "写入标签表头错误")
	}
	for i, datum := range ds.X {
		if err := fw.Write(formatRow(datum, precision)); err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d行特征错误", i))
		}
		if err := lw.Write([]string{string(ds.Y[i])}); err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d行标签错误", i))
		}
	}

	fw.Flush()
	lw.Flush()
	if err := fw.Error(); err != nil {
		return errors.Wrap(err, "写入特征错误")
	}
	return errors.Wrap(lw.Error(), "写入标签错误")
}

// OutputMatrix 写出没有表头的数值矩阵，用于聚类中心
func OutputMatrix(data [][]float64, output io.Writer, precision int) error {
	writer := csv.NewWriter(output)
	for i, datum := range data {
		if err := writer.Write(formatRow(datum, precision)); err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d条数据错误", i))
		}
	}

	writer.Flush()
	return writer.Error()
}
