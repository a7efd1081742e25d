package preprocess

import (
	"github.com/packagewjx/instance-selection/pkg/core"
)

type Preprocessor interface {
	Preprocess(ds *core.Dataset)
}

type defaultPreprocess struct {
	chain []Preprocessor
}

func (d *defaultPreprocess) Preprocess(ds *core.Dataset) {
	for _, processor := range d.chain {
		processor.Preprocess(ds)
	}
}

func Chain(processors ...Preprocessor) Preprocessor {
	return &defaultPreprocess{chain: processors}
}

func Default() Preprocessor {
	return Chain(Impute(), MinMax())
}
