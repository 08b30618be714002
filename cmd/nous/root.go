package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nous",
	Short: "Nous is a cooperative trivia and resource game engine",
	Long:  `Nous runs a turn-based game of questions, thread and fate cards, playable in the terminal or served over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("save-path", "", "Directory for save files (default .nous/saves)")
	rootCmd.PersistentFlags().String("slot", "", "Save slot name (default nous-save)")
}
