package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/nous/pkg/deck"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate deck files without playing",
	Long:  `Parses and validates question and fate deck files, reporting the first structural problem found.`,
	Run: func(cmd *cobra.Command, args []string) {
		questionsPath, _ := cmd.Flags().GetString("questions")
		cardsPath, _ := cmd.Flags().GetString("cards")

		failed := false

		if questionsPath != "" {
			data, err := os.ReadFile(questionsPath)
			if err != nil {
				fmt.Printf("questions: %v\n", err)
				failed = true
			} else if questions, err := deck.ParseQuestions(data); err != nil {
				fmt.Printf("questions: %v\n", err)
				failed = true
			} else {
				fmt.Printf("questions: OK (%d entries)\n", len(questions))
			}
		}

		if cardsPath != "" {
			data, err := os.ReadFile(cardsPath)
			if err != nil {
				fmt.Printf("cards: %v\n", err)
				failed = true
			} else if cards, err := deck.ParseFateCards(data); err != nil {
				fmt.Printf("cards: %v\n", err)
				failed = true
			} else {
				fmt.Printf("cards: OK (%d entries)\n", len(cards))
			}
		}

		if questionsPath == "" && cardsPath == "" {
			fmt.Println("Nothing to validate: pass --questions and/or --cards")
			failed = true
		}

		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("questions", "", "Path to a question deck file")
	validateCmd.Flags().String("cards", "", "Path to a fate deck file")
}
