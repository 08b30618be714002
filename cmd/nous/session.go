package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/nous/internal/adapters"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage save slots",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing save slots",
	Run: func(cmd *cobra.Command, args []string) {
		savePath, _ := cmd.Flags().GetString("save-path")
		store := adapters.NewFileStore(savePath)

		slots, err := store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if len(slots) == 0 {
			fmt.Println("No save slots found.")
			return
		}
		for _, slot := range slots {
			fmt.Println(slot)
		}
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [slot]",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		savePath, _ := cmd.Flags().GetString("save-path")
		store := adapters.NewFileStore(savePath)

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Slot %q deleted.\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
}
