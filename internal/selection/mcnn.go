package selection

import (
	"fmt"
	"github.com/packagewjx/instance-selection/internal/kibl"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

type MCNNOptions struct {
	Classifier kibl.Options
	// 细化循环最多执行的分类轮数，小于等于0时取数据集行数
	MaxIterations int
}

type MCNNResult struct {
	// 删除操作之后保留下来的原型
	Prototypes *core.Dataset
	// Prototypes每一行在输入数据集中的行号
	PrototypeIndices []int
	// 删除操作之前的全部原型行号，按加入顺序排列，可能重复
	GrownIndices []int
	SeedIndices  []int
	// 每一轮分类时原型集的大小
	SizeHistory []int
	Iterations  int
}

// MCNN 执行改进的压缩近邻算法：每个类别先取离类中心最近的实例作为原型，然后反复用原型对全部数据分类，
// 把每个类别误分类实例中离其中心最近的一个加入原型，直到没有误分类。最后以K=1再分类一次，
// 只保留作为正确分类最近邻的原型，重复加入的原型只保留第一次。
func MCNN(ds *core.Dataset, opts MCNNOptions) (*MCNNResult, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	clsOpts := opts.Classifier
	clsOpts.ExcludeSelf = false

	classes := ds.Classes()
	seeds, err := seedPrototypes(ds, classes)
	if err != nil {
		return nil, err
	}

	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = ds.Len()
		if maxIterations < 1 {
			maxIterations = 1
		}
	}

	result := &MCNNResult{
		SeedIndices: seeds,
		SizeHistory: make([]int, 0),
	}
	prototypes := append([]int(nil), seeds...)
	bestSize, bestMismatches := len(prototypes), -1
	reference, err := ds.Select(prototypes)
	if err != nil {
		return nil, err
	}

	converged := false
	lastMismatches := 0
	for iteration := 1; iteration <= maxIterations; iteration++ {
		classified, err := kibl.Classify(reference, ds, clsOpts)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("第%d轮分类出错", iteration))
		}
		result.SizeHistory = append(result.SizeHistory, len(prototypes))
		result.Iterations = iteration

		mismatches := mismatchIndices(ds.Y, classified.Predictions)
		lastMismatches = len(mismatches)
		if bestMismatches == -1 || len(mismatches) < bestMismatches {
			bestSize, bestMismatches = len(prototypes), len(mismatches)
		}
		if len(mismatches) == 0 {
			converged = true
			break
		}

		added, err := representatives(ds, classes, mismatches)
		if err != nil {
			return nil, err
		}
		addedSet, err := ds.Select(added)
		if err != nil {
			return nil, err
		}
		if reference, err = reference.Concat(addedSet); err != nil {
			return nil, err
		}
		prototypes = append(prototypes, added...)
	}

	if !converged {
		best := append([]int(nil), prototypes[:bestSize]...)
		bestSet, err := ds.Select(best)
		if err != nil {
			return nil, err
		}
		return nil, &NonConvergenceError{
			Iterations:       result.Iterations,
			Mismatches:       lastMismatches,
			Prototypes:       bestSet,
			PrototypeIndices: best,
			BestMismatches:   bestMismatches,
		}
	}

	result.GrownIndices = prototypes
	pruneOpts := clsOpts
	pruneOpts.K = 1
	participating, err := participatingPrototypes(ds, prototypes, pruneOpts)
	if err != nil {
		return nil, err
	}
	result.PrototypeIndices = participating
	result.Prototypes, err = ds.Select(participating)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// seedPrototypes 为每个类别选出离该类中心最近的实例
func seedPrototypes(ds *core.Dataset, classes []core.Label) ([]int, error) {
	seeds := make([]int, 0, len(classes))
	for _, label := range classes {
		members := ds.IndicesOf(label)
		if len(members) == 0 {
			return nil, errors.Wrap(ErrEmptyClassPartition, fmt.Sprintf("类别%s", label))
		}
		closest, err := closestToCentroid(ds, members)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, closest)
	}
	return seeds, nil
}

// representatives 对误分类实例按类别分组，每组选出离组中心最近的实例。类别按classes的顺序处理
func representatives(ds *core.Dataset, classes []core.Label, mismatches []int) ([]int, error) {
	byClass := make(map[core.Label][]int)
	for _, idx := range mismatches {
		byClass[ds.Y[idx]] = append(byClass[ds.Y[idx]], idx)
	}

	added := make([]int, 0, len(byClass))
	for _, label := range classes {
		members, ok := byClass[label]
		if !ok {
			continue
		}
		closest, err := closestToCentroid(ds, members)
		if err != nil {
			return nil, err
		}
		added = append(added, closest)
	}
	return added, nil
}

// closestToCentroid 返回members中与其中心欧氏距离最小的行号，距离相同时取先出现的
func closestToCentroid(ds *core.Dataset, members []int) (int, error) {
	centroid, err := ds.Centroid(members)
	if err != nil {
		return -1, errors.Wrap(ErrEmptyClassPartition, err.Error())
	}
	closest := -1
	minDistance := 0.0
	for _, idx := range members {
		d := floats.Distance(ds.X[idx], centroid, 2)
		if closest == -1 || d < minDistance {
			closest = idx
			minDistance = d
		}
	}
	return closest, nil
}

func mismatchIndices(truth, predictions []core.Label) []int {
	mismatches := make([]int, 0)
	for i := range truth {
		if truth[i] != predictions[i] {
			mismatches = append(mismatches, i)
		}
	}
	return mismatches
}

// participatingPrototypes 用全部原型再分类一次，返回在至少一次正确分类中作为同类近邻投票的原型，
// 结果是输入数据集的行号，保持原型加入的顺序。K=1时距离相同的重复原型只有先加入的一个会成为近邻
func participatingPrototypes(ds *core.Dataset, prototypes []int, opts kibl.Options) ([]int, error) {
	reference, err := ds.Select(prototypes)
	if err != nil {
		return nil, err
	}
	classified, err := kibl.Classify(reference, ds, opts)
	if err != nil {
		return nil, errors.Wrap(err, "删除操作分类出错")
	}

	used := make([]bool, len(prototypes))
	for i, prediction := range classified.Predictions {
		if prediction != ds.Y[i] {
			continue
		}
		for _, j := range classified.Neighbors[i] {
			if reference.Y[j] == ds.Y[i] {
				used[j] = true
			}
		}
	}

	participating := make([]int, 0, len(prototypes))
	for j, ok := range used {
		if ok {
			participating = append(participating, prototypes[j])
		}
	}
	return participating, nil
}
