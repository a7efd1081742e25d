package dataset

import (
	"encoding/csv"
	"fmt"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
	"io"
	"math"
	"strconv"
	"strings"
)

type DataFileLoader interface {
	Load(in io.Reader) (*core.Dataset, error)
}

type DataFormat string

const (
	CSV = DataFormat("csv")
)

func ParseDataFormat(s string) (DataFormat, error) {
	switch f := DataFormat(strings.ToLower(s)); f {
	case CSV:
		return f, nil
	default:
		return "", fmt.Errorf("不支持的数据格式%s", s)
	}
}

type LoaderOptions struct {
	// 标签列名，为空时使用最后一列
	LabelColumn string
	// 需要移除的列号，从0开始计算。使用此字段忽略掉不是数字的列
	RemoveColumn []int
}

func NewDataLoader(format DataFormat, opts LoaderOptions) (DataFileLoader, error) {
	switch format {
	case CSV:
		return &csvLoader{opts: opts}, nil
	default:
		return nil, fmt.Errorf("不支持的数据格式%s", format)
	}
}

type csvLoader struct {
	opts LoaderOptions
}

// 缺失值记为NaN，由预处理填充
func isMissing(s string) bool {
	switch s {
	case "", "?", "NaN", "nan", "NA":
		return true
	}
	return false
}

func (c *csvLoader) Load(in io.Reader) (*core.Dataset, error) {
	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("数据文件为空")
	} else if err != nil {
		return nil, errors.Wrap(err, "读取表头出错")
	}

	labelIdx := len(header) - 1
	if c.opts.LabelColumn != "" {
		labelIdx = -1
		for i, name := range header {
			if strings.TrimSpace(name) == c.opts.LabelColumn {
				labelIdx = i
				break
			}
		}
		if labelIdx == -1 {
			return nil, fmt.Errorf("表头中没有标签列%s", c.opts.LabelColumn)
		}
	}

	removeSet := make(map[int]struct{})
	for _, rc := range c.opts.RemoveColumn {
		if rc == labelIdx {
			return nil, fmt.Errorf("不能移除标签列%d", rc)
		}
		removeSet[rc] = struct{}{}
	}

	featureIdx := make([]int, 0, len(header))
	columns := make([]string, 0, len(header))
	for i, name := range header {
		if _, ok := removeSet[i]; ok || i == labelIdx {
			continue
		}
		featureIdx = append(featureIdx, i)
		columns = append(columns, strings.TrimSpace(name))
	}

	x := make([][]float64, 0, 16)
	y := make([]core.Label, 0, 16)
	var record []string
	recordRead := 0
	for record, err = reader.Read(); err == nil; record, err = reader.Read() {
		recordRead++
		if len(record) != len(header) {
			return nil, fmt.Errorf("第%d行有%d列，表头有%d列", recordRead, len(record), len(header))
		}

		datum := make([]float64, len(featureIdx))
		for j, i := range featureIdx {
			field := strings.TrimSpace(record[i])
			if isMissing(field) {
				datum[j] = math.NaN()
				continue
			}
			f, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("第%d行第%d个数据有误，数据为[%v]", recordRead, i, record[i]))
			}
			datum[j] = f
		}

		x = append(x, datum)
		y = append(y, core.Label(strings.TrimSpace(record[labelIdx])))
	}

	if err != io.EOF {
		return nil, errors.Wrap(err, "读取数据出错")
	}

	return core.NewDataset(columns, strings.TrimSpace(header[labelIdx]), x, y)
}
