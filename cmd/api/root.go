package main

import (
	"fmt"

	"github.com/justsurfingit/jobmarket/internal/config"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "jobboard"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "jobboard serves the job marketplace API",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	config.LoadDotEnv()

	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		cobra.CheckErr(fmt.Errorf("reading config %s: %w", cfgFile, err))
	}
}

// bootstrap loads the validated config and builds the logger every command uses.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, log, nil
}
