package kibl

import (
	"fmt"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
	"math"
)

type Voting string

const (
	// 每个近邻一票
	Majority Voting = "majority"
	// 权重为距离的倒数。存在距离为0的近邻时，只有这些近邻投票
	InverseDistance Voting = "distance"
	// 权重为exp(-d)
	Shepard Voting = "shepard"
)

func ParseVoting(s string) (Voting, error) {
	switch v := Voting(s); v {
	case Majority, InverseDistance, Shepard:
		return v, nil
	default:
		return "", errors.Wrap(ErrInvalidOptions, fmt.Sprintf("不支持的投票方式%s", s))
	}
}

type neighbor struct {
	index    int
	distance float64
}

// vote 统计近邻投票。neighbors必须按距离升序、距离相同时按行号升序排列。
// 票数相同时，离查询点最近的那个近邻的标签获胜，因此结果与参考集的排列无关，只与距离和行号有关。
func (v Voting) vote(neighbors []neighbor, labels []core.Label) core.Label {
	weights := make(map[core.Label]float64, len(neighbors))
	rank := make(map[core.Label]int, len(neighbors))

	zeroOnly := false
	if v == InverseDistance && len(neighbors) > 0 && neighbors[0].distance == 0 {
		zeroOnly = true
	}

	for i, n := range neighbors {
		label := labels[n.index]
		var w float64
		switch v {
		case InverseDistance:
			if zeroOnly {
				if n.distance != 0 {
					continue
				}
				w = 1
			} else {
				w = 1 / n.distance
			}
		case Shepard:
			w = math.Exp(-n.distance)
		default:
			w = 1
		}
		if _, ok := rank[label]; !ok {
			rank[label] = i
		}
		weights[label] += w
	}

	var winner core.Label
	best := math.Inf(-1)
	bestRank := len(neighbors)
	for label, w := range weights {
		if w > best || (w == best && rank[label] < bestRank) {
			winner = label
			best = w
			bestRank = rank[label]
		}
	}
	return winner
}
