package preprocess

import (
	"github.com/packagewjx/instance-selection/pkg/core"
	"math"
)

func Impute() Preprocessor {
	return &imputePreProcessor{}
}

type imputePreProcessor struct {
}

// Preprocess 用列均值填充NaN。整列都是NaN时填0
func (i imputePreProcessor) Preprocess(ds *core.Dataset) {
	for fi := 0; fi < ds.Dims(); fi++ {
		sum := 0.0
		count := 0
		missing := false
		for _, row := range ds.X {
			if math.IsNaN(row[fi]) {
				missing = true
				continue
			}
			sum += row[fi]
			count++
		}
		if !missing {
			continue
		}

		fill := 0.0
		if count > 0 {
			fill = sum / float64(count)
		}
		for _, row := range ds.X {
			if math.IsNaN(row[fi]) {
				row[fi] = fill
			}
		}
	}
}
