/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/packagewjx/instance-selection/internal/dataset"
	"github.com/packagewjx/instance-selection/internal/kibl"
	"github.com/packagewjx/instance-selection/internal/preprocess"
	"github.com/packagewjx/instance-selection/internal/report"
	"github.com/packagewjx/instance-selection/internal/selection"
	"github.com/packagewjx/instance-selection/internal/store"
	"github.com/packagewjx/instance-selection/internal/utils"
	"github.com/packagewjx/instance-selection/pkg/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const ReportFileName = "report.csv"

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:   "select algorithm foldFile...",
	Short: "对每个数据折执行实例选择（mcnn或enn），输出精简后的训练集与报告",
	Long: "对每个数据折执行实例选择，algorithm可选mcnn或enn。\n" +
		"每个数据折输出<fold>.<algorithm>.csv，enn额外输出<fold>.enn.X.csv与<fold>.enn.y.csv，\n" +
		"所有数据折的统计写入输出目录下的report.csv。foldFile支持通配符。\n",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return fmt.Errorf("参数错误，至少需要算法与一个数据折文件")
		}
		_, err := selection.ParseAlgorithm(args[0])
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, _ := selection.ParseAlgorithm(args[0])
		runner, err := newFoldRunnerFromConfig(alg)
		if err != nil {
			return err
		}
		if runner.dao != nil {
			defer func() {
				if db, err := runner.dao.DB().DB(); err == nil {
					_ = db.Close()
				}
			}()
		}
		files, totalByte, err := utils.ExpandPatterns(args[1:])
		if err != nil {
			return err
		}
		runner.totalByte = totalByte
		return runner.runAll(files)
	},
}

// foldRunner 依次处理每个数据折
type foldRunner struct {
	alg           selection.Algorithm
	opts          selection.Options
	loader        dataset.DataFileLoader
	preprocessor  preprocess.Preprocessor
	outputDir     string
	precision     int
	acceptPartial bool
	dao           store.Dao
	logger        *log.Logger

	readCount  uint64
	writeCount uint64
	totalByte  int64
}

func newFoldRunnerFromConfig(alg selection.Algorithm) (*foldRunner, error) {
	opts, err := selectionOptionsFromConfig()
	if err != nil {
		return nil, err
	}
	loader, err := newLoaderFromConfig()
	if err != nil {
		return nil, err
	}
	runner := &foldRunner{
		alg:           alg,
		opts:          opts,
		loader:        loader,
		outputDir:     viper.GetString(FlagOutputDir),
		precision:     viper.GetInt(FlagOutputPrecision),
		acceptPartial: viper.GetBool(FlagAcceptPartial),
		logger:        log.New(os.Stdout, "Select: ", log.LstdFlags|log.Lmsgprefix),
	}
	if viper.GetBool(FlagNormalize) {
		runner.preprocessor = preprocess.Default()
	}
	if dsn := viper.GetString(FlagMysqlDSN); dsn != "" {
		runner.dao, err = store.NewDao(dsn, viper.GetBool(FlagVerbose))
		if err != nil {
			return nil, err
		}
	}
	return runner, nil
}

// runAll 处理所有数据折并写出报告。单个数据折失败不影响其他数据折，但最终返回错误
func (r *foldRunner) runAll(files []string) error {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return errors.Wrap(err, "创建输出目录失败")
	}

	reports := make([]*report.FoldReport, 0, len(files))
	failed := make([]string, 0)
	for i, file := range files {
		r.logger.Printf("处理数据折 %d/%d：%s\n", i+1, len(files), file)
		rep, err := r.run(file)
		if err != nil {
			r.logger.Printf("数据折%s处理失败：%v\n", file, err)
			failed = append(failed, file)
			continue
		}
		reports = append(reports, rep)
		if r.totalByte > 0 {
			r.logger.Printf("进度：%8.2f%% (%d/%d)\n", float32(r.readCount)/float32(r.totalByte)*100, r.readCount, r.totalByte)
		}
	}
	r.logger.Printf("共读取%d字节，写出%d字节\n", r.readCount, r.writeCount)

	if len(reports) > 0 {
		if err := r.writeReport(reports); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("以下数据折处理失败：%s", strings.Join(failed, "、"))
	}
	return nil
}

func (r *foldRunner) writeReport(reports []*report.FoldReport) error {
	out, err := os.Create(filepath.Join(r.outputDir, ReportFileName))
	if err != nil {
		return errors.Wrap(err, "创建报告文件失败")
	}
	defer func() {
		_ = out.Close()
	}()
	if err = report.Write(out, reports); err != nil {
		return err
	}

	summary, err := report.Summarize(reports)
	if err != nil {
		return err
	}
	r.logger.Printf("共%d个数据折，精简率%.4f±%.4f（中位数%.4f），%d个数据折的准确率%.4f±%.4f，耗时%.2f秒\n",
		summary.Folds, summary.MeanReduction, summary.StdReduction, summary.MedianReduction,
		summary.AccuracyFolds, summary.MeanAccuracy, summary.StdAccuracy, summary.TotalSeconds)
	return nil
}

func foldName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (r *foldRunner) load(file string) (*core.Dataset, error) {
	in, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrap(err, "打开数据折文件失败")
	}
	defer func() {
		_ = in.Close()
	}()
	return r.loader.Load(&utils.ReadCounter{Count: &r.readCount, Reader: in})
}

// run 处理单个数据折，返回该数据折的报告
func (r *foldRunner) run(file string) (*report.FoldReport, error) {
	start := time.Now()
	ds, err := r.load(file)
	if err != nil {
		return nil, err
	}
	if r.preprocessor != nil {
		r.preprocessor.Preprocess(ds)
	}

	converged := true
	outcome, err := selection.Run(r.alg, ds, r.opts)
	if err != nil {
		var nce *selection.NonConvergenceError
		if !errors.As(err, &nce) {
			return nil, err
		}
		r.logger.Printf("%s未收敛：%v\n", file, err)
		if !r.acceptPartial {
			return nil, err
		}
		converged = false
		outcome = &selection.Outcome{
			Algorithm:  r.alg,
			Reduced:    nce.Prototypes,
			Indices:    nce.PrototypeIndices,
			Iterations: nce.Iterations,
		}
	}
	r.logger.Printf("%s：%d行精简为%d行，迭代%d次\n", file, ds.Len(), outcome.Reduced.Len(), outcome.Iterations)

	name := foldName(file)
	if err = r.writeOutcome(name, outcome); err != nil {
		return nil, err
	}

	accuracy, err := r.accuracy(outcome.Reduced, ds)
	if err != nil {
		r.logger.Printf("%s无法计算准确率：%v\n", file, err)
		accuracy = report.NoAccuracy()
	}

	if r.dao != nil {
		id, err := r.dao.SaveRun(&store.Run{
			Fold:          name,
			Algorithm:     string(r.alg),
			K:             r.opts.Classifier.K,
			InputRows:     ds.Len(),
			Iterations:    outcome.Iterations,
			Converged:     converged,
			Reduced:       outcome.Reduced,
			SourceIndices: outcome.Indices,
		})
		if err != nil {
			return nil, err
		}
		r.logger.Printf("%s的结果已保存，编号%d\n", file, id)
	}

	return &report.FoldReport{
		Fold:       name,
		Algorithm:  string(r.alg),
		K:          r.opts.Classifier.K,
		InputRows:  ds.Len(),
		OutputRows: outcome.Reduced.Len(),
		Reduction:  report.Reduction(ds.Len(), outcome.Reduced.Len()),
		Accuracy:   accuracy,
		Iterations: outcome.Iterations,
		Converged:  converged,
		Seconds:    time.Since(start).Seconds(),
	}, nil
}

// accuracy 以精简后的数据集为参考集，对完整的数据折分类
func (r *foldRunner) accuracy(reduced, ds *core.Dataset) (float64, error) {
	opts := r.opts.Classifier
	opts.ExcludeSelf = false
	result, err := kibl.Classify(reduced, ds, opts)
	if err != nil {
		return 0, err
	}
	return kibl.Accuracy(result.Predictions, ds.Y)
}

func (r *foldRunner) writeOutcome(name string, outcome *selection.Outcome) error {
	base := filepath.Join(r.outputDir, fmt.Sprintf("%s.%s", name, outcome.Algorithm))
	if err := writeFile(base+".csv", func(out *os.File) error {
		w := &utils.WriterCounter{Writer: out}
		defer func() {
			r.writeCount += w.Count
		}()
		return dataset.OutputResult(outcome.Reduced, w, r.precision)
	}); err != nil {
		return err
	}
	if outcome.ENN == nil {
		return nil
	}

	features, err := os.Create(base + ".X.csv")
	if err != nil {
		return errors.Wrap(err, "创建特征文件失败")
	}
	defer func() {
		_ = features.Close()
	}()
	return writeFile(base+".y.csv", func(labels *os.File) error {
		fw := &utils.WriterCounter{Writer: features}
		lw := &utils.WriterCounter{Writer: labels}
		defer func() {
			r.writeCount += fw.Count + lw.Count
		}()
		return dataset.OutputSplit(outcome.Reduced, fw, lw, r.precision)
	})
}

func writeFile(name string, write func(out *os.File) error) error {
	out, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("创建文件%s失败", name))
	}
	defer func() {
		_ = out.Close()
	}()
	return write(out)
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().Int(FlagK, kibl.DefaultK, "近邻数量K")
	selectCmd.Flags().String(FlagMetric, string(kibl.Euclidean),
		"距离度量，可选值：euclidean、manhattan、chebyshev、minkowski、cosine")
	selectCmd.Flags().Float64(FlagMinkowskiP, 2, "minkowski距离的阶数P，不小于1")
	selectCmd.Flags().String(FlagVoting, string(kibl.Majority),
		"投票方式，可选值：majority、distance、shepard")
	selectCmd.Flags().String(FlagKPolicy, string(kibl.ClampK),
		"参考集行数少于K时的处理方式，可选值：clamp、strict")
	selectCmd.Flags().Int(FlagMaxIterations, 0, "MCNN最大迭代次数，不大于0时为数据折行数")
	selectCmd.Flags().Int(FlagWorkers, 0, "分类时使用的协程数，不大于0时为GOMAXPROCS")
	selectCmd.Flags().Bool(FlagNormalize, false, "选择前填充缺失值并将特征缩放到[0,1]")
	selectCmd.Flags().StringP(FlagOutputDir, "o", ".", "输出目录")
	selectCmd.Flags().Bool(FlagAcceptPartial, false, "MCNN未收敛时使用误分类最少的原型集合")
	selectCmd.Flags().String(FlagMysqlDSN, "", "保存选择结果的MySQL数据源，为空时不保存")

	for _, name := range []string{FlagK, FlagMetric, FlagMinkowskiP, FlagVoting, FlagKPolicy, FlagMaxIterations,
		FlagWorkers, FlagNormalize, FlagOutputDir, FlagAcceptPartial, FlagMysqlDSN} {
		_ = viper.BindPFlag(name, selectCmd.Flags().Lookup(name))
	}
}
