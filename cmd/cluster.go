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
	"github.com/packagewjx/instance-selection/internal/cluster"
	"github.com/packagewjx/instance-selection/internal/dataset"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"os"
	"regexp"
	"strconv"
)

// Flags for cluster
const (
	AlgorithmFlag      = "algorithm"
	KMeansRoundFlag    = "kMeansRound"
	AssignmentFileFlag = "assignmentFile"
)

// clusterCmd represents the cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster dataFile outputFile numClass",
	Short: "读取数据文件聚类计算，并输出聚类中心到新文件中",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 3 {
			return fmt.Errorf("参数错误")
		} else if args[0] == args[1] {
			return fmt.Errorf("dataFile与outputFile不能一致")
		}

		if match, _ := regexp.MatchString("^\\d+$", args[2]); !match {
			return fmt.Errorf("类数量参数不是数字")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		algType := cluster.AlgorithmType(viper.GetString(AlgorithmFlag))
		alg, err := cluster.GetAlgorithm(algType, cluster.Options{Round: viper.GetInt(KMeansRoundFlag)})
		if err != nil {
			return err
		}

		loader, err := newLoaderFromConfig()
		if err != nil {
			return err
		}
		log.Println("读取数据中")
		in, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "打开数据文件失败")
		}
		ds, err := loader.Load(in)
		_ = in.Close()
		if err != nil {
			return errors.Wrap(err, "读取错误")
		}
		log.Println("读取数据完成")

		log.Printf("运行%s算法中\n", algType)
		numClass, _ := strconv.Atoi(args[2])
		centers, class, err := alg.Run(ds.X, numClass)
		if err != nil {
			return err
		}
		log.Printf("运行%s算法完成\n", algType)

		sizes := make([]int, len(centers))
		for _, c := range class {
			sizes[c]++
		}
		log.Println("各类数量：", sizes)

		precision := viper.GetInt(FlagOutputPrecision)
		if err = writeFile(args[1], func(out *os.File) error {
			return dataset.OutputMatrix(centers, out, precision)
		}); err != nil {
			return errors.Wrap(err, "输出文件错误")
		}

		if assignmentFile := viper.GetString(AssignmentFileFlag); assignmentFile != "" {
			assignment := make([][]float64, len(class))
			for i, c := range class {
				assignment[i] = []float64{float64(c)}
			}
			if err = writeFile(assignmentFile, func(out *os.File) error {
				return dataset.OutputMatrix(assignment, out, 0)
			}); err != nil {
				return errors.Wrap(err, "输出分类文件错误")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clusterCmd)

	clusterCmd.Flags().StringP(AlgorithmFlag, "a", string(cluster.KMeans),
		"指定使用的算法。默认为kmeans，可选值：kmeans、lloyd")
	clusterCmd.Flags().String(AssignmentFileFlag, "",
		"每行数据所属类别的输出文件，为空时不输出")

	// Flags for K-Means Algorithm
	clusterCmd.Flags().Int(KMeansRoundFlag, cluster.KMeansDefaultRound,
		"K-Means算法执行的轮次")

	for _, name := range []string{AlgorithmFlag, AssignmentFileFlag, KMeansRoundFlag} {
		_ = viper.BindPFlag(name, clusterCmd.Flags().Lookup(name))
	}
}
