package core

import (
	"fmt"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"sort"
)

// Dataset 是按行号寻址的有序实例集合。X[i]与Y[i]共同构成第i个实例，行号即实例的身份。
// 所有行选择操作都显式传入行号，返回的新数据集拷贝了特征向量，不与原数据集共享内存。
type Dataset struct {
	Columns     []string
	LabelColumn string
	X           [][]float64
	Y           []Label
}

func NewDataset(columns []string, labelColumn string, x [][]float64, y []Label) (*Dataset, error) {
	d := &Dataset{
		Columns:     columns,
		LabelColumn: labelColumn,
		X:           x,
		Y:           y,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dataset) Validate() error {
	if len(d.X) != len(d.Y) {
		return errors.Wrap(ErrMisaligned, fmt.Sprintf("特征%d行，标签%d个", len(d.X), len(d.Y)))
	}
	dims := d.Dims()
	for i, row := range d.X {
		if len(row) != dims {
			return errors.Wrap(ErrDimensionMismatch, fmt.Sprintf("第%d行维度为%d，应为%d", i, len(row), dims))
		}
	}
	return nil
}

func (d *Dataset) Len() int {
	return len(d.X)
}

// Dims 返回特征维度。有列名时以列名为准，否则以第一行为准
func (d *Dataset) Dims() int {
	if len(d.Columns) > 0 {
		return len(d.Columns)
	}
	if len(d.X) > 0 {
		return len(d.X[0])
	}
	return 0
}

func (d *Dataset) emptyLike(capacity int) *Dataset {
	return &Dataset{
		Columns:     d.Columns,
		LabelColumn: d.LabelColumn,
		X:           make([][]float64, 0, capacity),
		Y:           make([]Label, 0, capacity),
	}
}

// Select 按给定顺序拷贝行，行号可以重复
func (d *Dataset) Select(indices []int) (*Dataset, error) {
	result := d.emptyLike(len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= d.Len() {
			return nil, errors.Wrap(ErrIndexOutOfRange, fmt.Sprintf("行号%d，数据集共%d行", idx, d.Len()))
		}
		result.X = append(result.X, append([]float64(nil), d.X[idx]...))
		result.Y = append(result.Y, d.Y[idx])
	}
	return result, nil
}

// Without 删除给定行号，剩余行保持原有相对顺序。kept为剩余行在原数据集中的行号
func (d *Dataset) Without(indices []int) (result *Dataset, kept []int, err error) {
	removeSet := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= d.Len() {
			return nil, nil, errors.Wrap(ErrIndexOutOfRange, fmt.Sprintf("行号%d，数据集共%d行", idx, d.Len()))
		}
		removeSet[idx] = struct{}{}
	}

	kept = make([]int, 0, d.Len()-len(removeSet))
	for i := 0; i < d.Len(); i++ {
		if _, ok := removeSet[i]; !ok {
			kept = append(kept, i)
		}
	}

	result, err = d.Select(kept)
	return result, kept, err
}

func (d *Dataset) Concat(other *Dataset) (*Dataset, error) {
	if d.Dims() != other.Dims() && d.Len() > 0 && other.Len() > 0 {
		return nil, errors.Wrap(ErrDimensionMismatch, fmt.Sprintf("%d与%d", d.Dims(), other.Dims()))
	}
	if len(d.Columns) > 0 && len(other.Columns) > 0 {
		if len(d.Columns) != len(other.Columns) || d.LabelColumn != other.LabelColumn {
			return nil, ErrSchemaMismatch
		}
		for i := range d.Columns {
			if d.Columns[i] != other.Columns[i] {
				return nil, errors.Wrap(ErrSchemaMismatch, fmt.Sprintf("第%d列为%s与%s", i, d.Columns[i], other.Columns[i]))
			}
		}
	}

	result := d.emptyLike(d.Len() + other.Len())
	if len(result.Columns) == 0 {
		result.Columns = other.Columns
		result.LabelColumn = other.LabelColumn
	}
	for _, src := range []*Dataset{d, other} {
		for i := range src.X {
			result.X = append(result.X, append([]float64(nil), src.X[i]...))
			result.Y = append(result.Y, src.Y[i])
		}
	}
	return result, nil
}

// Centroid 计算给定行特征向量的逐元素均值
func (d *Dataset) Centroid(indices []int) ([]float64, error) {
	if len(indices) == 0 {
		return nil, ErrEmptySelection
	}
	centroid := make([]float64, d.Dims())
	for _, idx := range indices {
		if idx < 0 || idx >= d.Len() {
			return nil, errors.Wrap(ErrIndexOutOfRange, fmt.Sprintf("行号%d，数据集共%d行", idx, d.Len()))
		}
		floats.Add(centroid, d.X[idx])
	}
	floats.Scale(1/float64(len(indices)), centroid)
	return centroid, nil
}

// Classes 返回升序排列的不同标签
func (d *Dataset) Classes() []Label {
	set := make(map[Label]struct{})
	for _, y := range d.Y {
		set[y] = struct{}{}
	}
	classes := make([]Label, 0, len(set))
	for label := range set {
		classes = append(classes, label)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i] < classes[j]
	})
	return classes
}

func (d *Dataset) IndicesOf(label Label) []int {
	result := make([]int, 0)
	for i, y := range d.Y {
		if y == label {
			result = append(result, i)
		}
	}
	return result
}
