package store

import (
	"gorm.io/gorm"
)

type SelectionRunDO struct {
	gorm.Model
	Fold        string `gorm:"index;size:255"`
	Algorithm   string `gorm:"size:16"`
	K           int
	InputRows   int
	OutputRows  int
	Iterations  int
	Converged   bool
	Columns     string `gorm:"type:text"`
	LabelColumn string `gorm:"size:255"`
}

func (SelectionRunDO) TableName() string {
	return "selection_runs"
}

type SelectionRowDO struct {
	ID          uint `gorm:"primarykey"`
	RunID       uint `gorm:"index"`
	RowNum      int
	SourceIndex int
	Label       string `gorm:"size:255"`
	// 逗号分隔的特征值
	Features string `gorm:"type:text"`
}

func (SelectionRowDO) TableName() string {
	return "selection_rows"
}
