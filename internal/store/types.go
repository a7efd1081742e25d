package store

import (
	"fmt"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
	"strconv"
	"strings"
	"time"
)

// Run 是一次实例选择的结果。SourceIndices[i]为Reduced第i行在输入数据折中的行号
type Run struct {
	ID            uint
	CreatedAt     time.Time
	Fold          string
	Algorithm     string
	K             int
	InputRows     int
	Iterations    int
	Converged     bool
	Reduced       *core.Dataset
	SourceIndices []int
}

func encodeFeatures(row []float64) string {
	record := make([]string, len(row))
	for i, f := range row {
		record[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(record, core.Splitter)
}

func decodeFeatures(s string) ([]float64, error) {
	if s == "" {
		return []float64{}, nil
	}
	fields := strings.Split(s, core.Splitter)
	row := make([]float64, len(fields))
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("第%d个特征值有误，数据为[%s]", i, field))
		}
		row[i] = f
	}
	return row, nil
}

func toRunDO(run *Run) *SelectionRunDO {
	do := &SelectionRunDO{
		Fold:       run.Fold,
		Algorithm:  run.Algorithm,
		K:          run.K,
		InputRows:  run.InputRows,
		Iterations: run.Iterations,
		Converged:  run.Converged,
	}
	if run.Reduced != nil {
		do.OutputRows = run.Reduced.Len()
		do.Columns = strings.Join(run.Reduced.Columns, core.Splitter)
		do.LabelColumn = run.Reduced.LabelColumn
	}
	return do
}

func toRowDOs(runId uint, run *Run) ([]*SelectionRowDO, error) {
	if run.Reduced == nil {
		return []*SelectionRowDO{}, nil
	}
	if run.SourceIndices != nil && len(run.SourceIndices) != run.Reduced.Len() {
		return nil, errors.Wrap(core.ErrMisaligned,
			fmt.Sprintf("结果有%d行，来源行号有%d个", run.Reduced.Len(), len(run.SourceIndices)))
	}

	rows := make([]*SelectionRowDO, run.Reduced.Len())
	for i, x := range run.Reduced.X {
		source := i
		if run.SourceIndices != nil {
			source = run.SourceIndices[i]
		}
		rows[i] = &SelectionRowDO{
			RunID:       runId,
			RowNum:      i,
			SourceIndex: source,
			Label:       string(run.Reduced.Y[i]),
			Features:    encodeFeatures(x),
		}
	}
	return rows, nil
}

func fromDO(do *SelectionRunDO, rows []*SelectionRowDO) (*Run, error) {
	var columns []string
	if do.Columns != "" {
		columns = strings.Split(do.Columns, core.Splitter)
	}

	x := make([][]float64, len(rows))
	y := make([]core.Label, len(rows))
	sources := make([]int, len(rows))
	for i, row := range rows {
		features, err := decodeFeatures(row.Features)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("第%d行数据有误", row.RowNum))
		}
		x[i] = features
		y[i] = core.Label(row.Label)
		sources[i] = row.SourceIndex
	}

	reduced, err := core.NewDataset(columns, do.LabelColumn, x, y)
	if err != nil {
		return nil, err
	}
	return &Run{
		ID:            do.ID,
		CreatedAt:     do.CreatedAt,
		Fold:          do.Fold,
		Algorithm:     do.Algorithm,
		K:             do.K,
		InputRows:     do.InputRows,
		Iterations:    do.Iterations,
		Converged:     do.Converged,
		Reduced:       reduced,
		SourceIndices: sources,
	}, nil
}
