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
	"github.com/mitchellh/go-homedir"
	"github.com/packagewjx/instance-selection/internal/dataset"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"os"
	"strings"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "instance-selection",
	Short: "聚类与实例选择实验工具",
	Long: "对按折划分的训练数据执行实例选择（MCNN、ENN），以K近邻分类器（K-IBL）作为判定依据，\n" +
		"输出精简后的训练集与每折的统计报告。另外提供K-Means聚类与数据标准化命令。\n",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"配置文件，默认为$HOME/.instance-selection.yaml")
	rootCmd.PersistentFlags().BoolP(FlagVerbose, "v", false,
		"输出数据库语句等详细日志")
	rootCmd.PersistentFlags().String(FlagDataFormat, string(dataset.CSV),
		"数据文件格式，可选值：csv")
	rootCmd.PersistentFlags().String(FlagLabelColumn, "",
		"标签列名，为空时使用最后一列")
	rootCmd.PersistentFlags().StringSliceP(FlagRemoveColumn, "r", []string{},
		"需要移除的列号，从0开始计算。使用此字段忽略掉不是数字的列")
	rootCmd.PersistentFlags().IntP(FlagOutputPrecision, "p", dataset.DefaultOutputPrecision,
		"输出文件数据精度")

	for _, name := range []string{FlagVerbose, FlagDataFormat, FlagLabelColumn, FlagRemoveColumn, FlagOutputPrecision} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".instance-selection")
	}

	viper.SetEnvPrefix("ISEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Println("使用配置文件：", viper.ConfigFileUsed())
	}
}
