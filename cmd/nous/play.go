package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/nous/internal/cli"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an interactive game in the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		savePath, _ := cmd.Flags().GetString("save-path")
		slot, _ := cmd.Flags().GetString("slot")
		participants, _ := cmd.Flags().GetInt("participants")
		resume, _ := cmd.Flags().GetBool("resume")
		questions, _ := cmd.Flags().GetString("questions")
		cards, _ := cmd.Flags().GetString("cards")
		seed, _ := cmd.Flags().GetInt64("seed")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := cli.PlayOptions{
			Participants:  participants,
			Seed:          seed,
			SeedSet:       cmd.Flags().Changed("seed"),
			Slot:          slot,
			SavePath:      savePath,
			QuestionsPath: questions,
			CardsPath:     cards,
			Resume:        resume,
			Debug:         debug,
		}

		if err := cli.Play(ctx, opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntP("participants", "n", 3, "Number of participants at the table")
	playCmd.Flags().Bool("resume", false, "Resume from the save slot if one exists")
	playCmd.Flags().String("questions", "", "Path to a question deck file (YAML or JSON)")
	playCmd.Flags().String("cards", "", "Path to a fate deck file (YAML or JSON)")
	playCmd.Flags().Int64("seed", 0, "Seed for deterministic draws and shuffles")
}
