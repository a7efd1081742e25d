// Package kibl 实现K近邻实例学习分类器（K-IBL），作为实例选择算法的分类预言机。
package kibl

import (
	"fmt"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
	"runtime"
	"sync"
)

var (
	ErrInsufficientReferenceData = errors.New("参考数据不足")
	ErrInvalidOptions            = errors.New("分类器参数错误")
)

// K大于参考集大小时的处理策略
type KPolicy string

const (
	// 将K截断为参考集大小
	ClampK KPolicy = "clamp"
	// 返回ErrInsufficientReferenceData
	StrictK KPolicy = "strict"
)

func ParseKPolicy(s string) (KPolicy, error) {
	switch p := KPolicy(s); p {
	case ClampK, StrictK:
		return p, nil
	default:
		return "", errors.Wrap(ErrInvalidOptions, fmt.Sprintf("不支持的K策略%s", s))
	}
}

const (
	DefaultK = 3
)

type Options struct {
	K       int
	Metric  Metric
	P       float64
	Voting  Voting
	KPolicy KPolicy
	// 查询集就是参考集本身（同一个*core.Dataset）时，不把查询行自己算作近邻
	ExcludeSelf bool
	// 并行处理查询行的协程数，小于等于0时使用GOMAXPROCS
	Workers int
}

func DefaultOptions() Options {
	return Options{
		K:       DefaultK,
		Metric:  Euclidean,
		P:       2,
		Voting:  Majority,
		KPolicy: ClampK,
	}
}

func (o Options) withDefaults() Options {
	if o.Metric == "" {
		o.Metric = Euclidean
	}
	if o.Voting == "" {
		o.Voting = Majority
	}
	if o.KPolicy == "" {
		o.KPolicy = ClampK
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Result 中Predictions[i]是第i个查询行的预测标签，Neighbors[i]是参与投票的参考集行号，按距离升序排列
type Result struct {
	Predictions []core.Label
	Neighbors   [][]int
}

// Classifier 是“在参考集上训练、对查询集预测”的能力
type Classifier interface {
	Fit(reference *core.Dataset) error
	Predict(query *core.Dataset) ([]core.Label, error)
}

type KIBL struct {
	opts      Options
	distance  DistanceFunc
	reference *core.Dataset
}

var _ Classifier = &KIBL{}

func New(opts Options) (*KIBL, error) {
	opts = opts.withDefaults()
	if opts.K < 1 {
		return nil, errors.Wrap(ErrInvalidOptions, fmt.Sprintf("K必须不小于1，当前为%d", opts.K))
	}
	if _, err := ParseVoting(string(opts.Voting)); err != nil {
		return nil, err
	}
	if _, err := ParseKPolicy(string(opts.KPolicy)); err != nil {
		return nil, err
	}
	distance, err := opts.Metric.Func(opts.P)
	if err != nil {
		return nil, err
	}
	return &KIBL{
		opts:     opts,
		distance: distance,
	}, nil
}

// Fit 只保存参考集，不拷贝
func (c *KIBL) Fit(reference *core.Dataset) error {
	if reference == nil || reference.Len() == 0 {
		return errors.Wrap(ErrInsufficientReferenceData, "参考集为空")
	}
	c.reference = reference
	return nil
}

func (c *KIBL) Predict(query *core.Dataset) ([]core.Label, error) {
	result, err := c.Classify(query)
	if err != nil {
		return nil, err
	}
	return result.Predictions, nil
}

func (c *KIBL) Classify(query *core.Dataset) (*Result, error) {
	ref := c.reference
	if ref == nil || ref.Len() == 0 {
		return nil, errors.Wrap(ErrInsufficientReferenceData, "参考集为空")
	}
	if query.Len() > 0 && query.Dims() != ref.Dims() {
		return nil, errors.Wrap(core.ErrDimensionMismatch,
			fmt.Sprintf("查询集维度为%d，参考集维度为%d", query.Dims(), ref.Dims()))
	}

	excludeSelf := c.opts.ExcludeSelf && query == ref
	available := ref.Len()
	if excludeSelf {
		available--
	}
	if available < 1 {
		return nil, errors.Wrap(ErrInsufficientReferenceData, "排除查询行自身后参考集为空")
	}

	k := c.opts.K
	if k > available {
		if c.opts.KPolicy == StrictK {
			return nil, errors.Wrap(ErrInsufficientReferenceData,
				fmt.Sprintf("K为%d，参考集只有%d行", k, available))
		}
		k = available
	}

	result := &Result{
		Predictions: make([]core.Label, query.Len()),
		Neighbors:   make([][]int, query.Len()),
	}

	classifyRange := func(start, end int) {
		for i := start; i < end; i++ {
			self := -1
			if excludeSelf {
				self = i
			}
			nbrs := c.nearest(query.X[i], k, self)
			result.Predictions[i] = c.opts.Voting.vote(nbrs, ref.Y)
			indices := make([]int, len(nbrs))
			for j, n := range nbrs {
				indices[j] = n.index
			}
			result.Neighbors[i] = indices
		}
	}

	// 每个协程处理连续的一段查询行，各自写入不同下标，结果与顺序执行一致
	workers := c.opts.Workers
	if workers <= 1 || query.Len() <= 1 {
		classifyRange(0, query.Len())
		return result, nil
	}
	rowsPerWorker := (query.Len() + workers - 1) / workers
	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := start + rowsPerWorker
		if end > query.Len() {
			end = query.Len()
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			classifyRange(start, end)
		}(start, end)
	}
	wg.Wait()

	return result, nil
}

// nearest 返回离x最近的k个参考行，按(距离, 行号)升序。skip为需要跳过的行号，-1表示不跳过
func (c *KIBL) nearest(x []float64, k int, skip int) []neighbor {
	nbrs := make([]neighbor, 0, k+1)
	for j, row := range c.reference.X {
		if j == skip {
			continue
		}
		d := c.distance(x, row)
		if len(nbrs) == k && !(d < nbrs[k-1].distance) {
			// 行号递增遍历，距离相同的后来者排在后面
			continue
		}

		pos := len(nbrs)
		for pos > 0 && d < nbrs[pos-1].distance {
			pos--
		}
		nbrs = append(nbrs, neighbor{})
		copy(nbrs[pos+1:], nbrs[pos:])
		nbrs[pos] = neighbor{index: j, distance: d}
		if len(nbrs) > k {
			nbrs = nbrs[:k]
		}
	}
	return nbrs
}

// Classify 使用reference作为参考集对query分类
func Classify(reference, query *core.Dataset, opts Options) (*Result, error) {
	classifier, err := New(opts)
	if err != nil {
		return nil, err
	}
	if err = classifier.Fit(reference); err != nil {
		return nil, err
	}
	return classifier.Classify(query)
}

// Accuracy 返回预测正确的比例
func Accuracy(predictions, truth []core.Label) (float64, error) {
	if len(predictions) != len(truth) {
		return 0, errors.Wrap(core.ErrMisaligned, fmt.Sprintf("预测%d个，真实标签%d个", len(predictions), len(truth)))
	}
	if len(truth) == 0 {
		return 0, errors.New("没有可评估的数据")
	}
	correct := 0
	for i := range truth {
		if predictions[i] == truth[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(truth)), nil
}
