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
	"github.com/packagewjx/instance-selection/internal/preprocess"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
)

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize infile outfile",
	Short: "填充缺失值，并将每个特征列缩放到[0,1]",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("参数错误")
		} else if args[0] == args[1] {
			return fmt.Errorf("infile与outfile不能一致")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loaderOptionsFromConfig()
		if err != nil {
			return err
		}
		in, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "打开输入文件失败")
		}
		defer func() {
			_ = in.Close()
		}()

		return writeFile(args[1], func(out *os.File) error {
			return preprocess.NormalizeDataset(in, out, opts, viper.GetInt(FlagOutputPrecision))
		})
	},
}

func init() {
	preprocessCmd.AddCommand(normalizeCmd)
}
