// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the quiz-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir is where API keys are read from when the environment
// does not provide them.
const secretsDir = ".secrets/"

// rootCmd is the base command for the quiz-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "quiz-engine",
	Short: "Study tool for AWS certification quiz questions",
	Long: `quiz-engine builds a study bank from exam-prep question files and lecture
slide decks, and generates answer explanations with an AI model.

Each pipeline stage is a subcommand: extract parses question files into CSV,
slides caches text from a PDF deck, explain generates explanations, bank
stores and searches questions, and session assembles practice sets. The quiz
subcommand opens the interactive study menu.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./quiz-engine.yaml or ~/.config/quiz-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("quiz-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "quiz-engine"))
		}
	}

	viper.SetEnvPrefix("QUIZ_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
