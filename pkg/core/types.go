package core

import (
	"github.com/pkg/errors"
)

// 类别标签。数据集中出现的所有不同标签构成类别全集
type Label string

const Splitter = ","

// 标签列的默认名称，与实验数据折文件保持一致
const DefaultLabelColumn = "y_true"

var (
	ErrMisaligned        = errors.New("特征行数与标签数量不一致")
	ErrDimensionMismatch = errors.New("特征维度不一致")
	ErrSchemaMismatch    = errors.New("数据集列定义不一致")
	ErrIndexOutOfRange   = errors.New("行号超出数据集范围")
	ErrEmptySelection    = errors.New("行号集合为空")
)
