package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/nous"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of nous",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nous version %s\n", strings.TrimSpace(nous.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
