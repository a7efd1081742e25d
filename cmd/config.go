package cmd

import (
	"fmt"
	"github.com/packagewjx/instance-selection/internal/dataset"
	"github.com/packagewjx/instance-selection/internal/kibl"
	"github.com/packagewjx/instance-selection/internal/selection"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"strconv"
	"strings"
)

// Global Flags
const (
	FlagVerbose         = "verbose"
	FlagDataFormat      = "data-format"
	FlagLabelColumn     = "label-column"
	FlagRemoveColumn    = "remove-column"
	FlagOutputPrecision = "output-precision"
)

// Flags for select
const (
	FlagK             = "k"
	FlagMetric        = "metric"
	FlagMinkowskiP    = "minkowski-p"
	FlagVoting        = "voting"
	FlagKPolicy       = "k-policy"
	FlagMaxIterations = "max-iterations"
	FlagWorkers       = "workers"
	FlagNormalize     = "normalize"
	FlagOutputDir     = "output-dir"
	FlagAcceptPartial = "accept-partial"
	FlagMysqlDSN      = "mysql-dsn"
)

func newLoaderFromConfig() (dataset.DataFileLoader, error) {
	format, err := dataset.ParseDataFormat(viper.GetString(FlagDataFormat))
	if err != nil {
		return nil, err
	}
	opts, err := loaderOptionsFromConfig()
	if err != nil {
		return nil, err
	}
	return dataset.NewDataLoader(format, opts)
}

func loaderOptionsFromConfig() (dataset.LoaderOptions, error) {
	opts := dataset.LoaderOptions{
		LabelColumn:  viper.GetString(FlagLabelColumn),
		RemoveColumn: make([]int, 0),
	}
	for _, s := range viper.GetStringSlice(FlagRemoveColumn) {
		col, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || col < 0 {
			return opts, fmt.Errorf("列号%s有误", s)
		}
		opts.RemoveColumn = append(opts.RemoveColumn, col)
	}
	return opts, nil
}

func selectionOptionsFromConfig() (selection.Options, error) {
	opts := selection.Options{
		Classifier:    kibl.DefaultOptions(),
		MaxIterations: viper.GetInt(FlagMaxIterations),
	}

	var err error
	opts.Classifier.K = viper.GetInt(FlagK)
	opts.Classifier.P = viper.GetFloat64(FlagMinkowskiP)
	opts.Classifier.Workers = viper.GetInt(FlagWorkers)
	if opts.Classifier.Metric, err = kibl.ParseMetric(viper.GetString(FlagMetric)); err != nil {
		return opts, err
	}
	if opts.Classifier.Voting, err = kibl.ParseVoting(viper.GetString(FlagVoting)); err != nil {
		return opts, err
	}
	if opts.Classifier.KPolicy, err = kibl.ParseKPolicy(viper.GetString(FlagKPolicy)); err != nil {
		return opts, err
	}
	if opts.Classifier.K < 1 {
		return opts, errors.Wrap(kibl.ErrInvalidOptions, "K必须不小于1")
	}
	return opts, nil
}
