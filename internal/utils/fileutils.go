package utils

import (
	"fmt"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
	"sort"
)

// ExpandPatterns 展开文件通配符，并返回所有文件的总字节数。
// 没有匹配到任何文件的模式原样保留，由打开文件时报告错误
func ExpandPatterns(patterns []string) (files []string, totalByte int64, err error) {
	files = make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		glob, err := filepath.Glob(pattern)
		if err != nil {
			return nil, 0, errors.Wrap(err, fmt.Sprintf("文件模式%s有误", pattern))
		}
		if len(glob) == 0 {
			files = append(files, pattern)
			continue
		}
		sort.Strings(glob)
		for _, fileName := range glob {
			stat, err := os.Stat(fileName)
			if err != nil {
				return nil, 0, errors.Wrap(err, fmt.Sprintf("读取文件%s信息失败", fileName))
			}
			if stat.IsDir() {
				continue
			}
			files = append(files, fileName)
			totalByte += stat.Size()
		}
	}
	return files, totalByte, nil
}
