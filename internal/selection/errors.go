package selection

import (
	"fmt"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
)

var (
	ErrEmptyClassPartition = errors.New("类别没有任何实例")
	ErrNonConvergence      = errors.New("MCNN在最大迭代次数内未收敛")
	ErrUnknownAlgorithm    = errors.New("未知的实例选择算法")
)

// NonConvergenceError 在MCNN超过最大迭代次数时返回。调用者可以决定是否接受Prototypes这一部分结果
type NonConvergenceError struct {
	Iterations int
	// 最后一轮分类的误分类实例数
	Mismatches int
	// 误分类最少的那一轮所使用的原型集及其误分类数
	Prototypes       *core.Dataset
	PrototypeIndices []int
	BestMismatches   int
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%s：迭代%d轮后仍有%d个实例误分类，最好的一轮有%d个原型、%d个误分类",
		ErrNonConvergence.Error(), e.Iterations, e.Mismatches, len(e.PrototypeIndices), e.BestMismatches)
}

func (e *NonConvergenceError) Is(target error) bool {
	return target == ErrNonConvergence
}
