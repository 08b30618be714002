// Package cli implements the interactive terminal game loop.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/nous"
	"github.com/aretw0/nous/internal/adapters"
	"github.com/aretw0/nous/internal/presentation/tui"
	"github.com/aretw0/nous/pkg/deck"
	"github.com/aretw0/nous/pkg/domain"
)

// PlayOptions configures an interactive game.
type PlayOptions struct {
	Participants  int
	Seed          int64
	SeedSet       bool
	Slot          string
	SavePath      string
	QuestionsPath string
	CardsPath     string
	Resume        bool
	Debug         bool
	Quiet         bool
}

// Play runs the interactive game loop until the game ends or input closes.
func Play(ctx context.Context, opts PlayOptions) error {
	logger := createLogger(opts.Debug)

	engineOpts := []nous.Option{
		nous.WithLogger(logger),
		nous.WithSaveStore(adapters.NewFileStore(opts.SavePath)),
		nous.WithLoader(&deck.FileLoader{
			QuestionsPath: opts.QuestionsPath,
			CardsPath:     opts.CardsPath,
		}),
	}
	if opts.Slot != "" {
		engineOpts = append(engineOpts, nous.WithSlot(opts.Slot))
	}
	if opts.SeedSet {
		engineOpts = append(engineOpts, nous.WithSeed(opts.Seed))
	}

	engine, err := nous.New(ctx, engineOpts...)
	if err != nil {
		return err
	}

	render := func(s string) (string, error) { return s, nil }
	if isTerminal() && !opts.Quiet {
		tui.PrintBanner()
		render = tui.NewRenderer()
	}

	if opts.Resume && engine.LoadGame(ctx) {
		printSystemMessage("Save loaded. Resuming round %d.", engine.Snapshot().RoundNumber)
	} else {
		engine.InitializeGame(opts.Participants)
		printSystemMessage("New game for %d participants. %d lives on the table.",
			opts.Participants, engine.Snapshot().Lives)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if done, err := playRound(ctx, engine, scanner, render); done || err != nil {
			return err
		}

		switch {
		case engine.HasWonGame():
			printSystemMessage("The thread held. You won with %d points.", engine.Snapshot().Score)
			return nil
		case engine.IsOutOfLives():
			printSystemMessage("No lives remain. Final score: %d.", engine.Snapshot().Score)
			return nil
		}
	}
}

// playRound drives one round. Returns done=true when input closed or the
// player quit.
func playRound(ctx context.Context, engine *nous.Engine, scanner *bufio.Scanner, render func(string) (string, error)) (bool, error) {
	engine.StartNewRound()
	snap := engine.Snapshot()
	printSystemMessage("Round %d begins. Thread: %d. Category: %s.", snap.RoundNumber, snap.Thread, snap.Category)

	for {
		select {
		case <-ctx.Done():
			return true, nil
		default:
		}

		printStatus(engine.Snapshot())
		cmd, ok := prompt(scanner, "[p]ull [w]eave [f]ate [d]isagree [c]ut [s]ave [q]uit")
		if !ok {
			return true, nil
		}

		switch cmd {
		case "p", "pull":
			engine.PullThread()
			if done, err := askQuestion(engine, scanner, render); done || err != nil {
				return done, err
			}
			if over, done := checkThread(engine); over {
				return done, nil
			}
		case "w", "weave":
			if !engine.SpendThreadToWeave() {
				printSystemMessage("No thread left to weave.")
				continue
			}
			engine.ShuffleNextCategory()
			printSystemMessage("The loom turns. Next category: %s.", engine.Snapshot().Category)
			if over, done := checkThread(engine); over {
				return done, nil
			}
		case "f", "fate":
			drawFate(engine, scanner, render)
		case "d", "disagree":
			engine.IncrementAudacity()
			printSystemMessage("Noted. Audacity: %d.", engine.Snapshot().Audacity)
		case "c", "cut":
			engine.CutThread()
			printSystemMessage("You cut the thread and walk away with the points.")
			return false, nil
		case "s", "save":
			if engine.SaveGame(ctx) {
				printSystemMessage("Game saved.")
			} else {
				printSystemMessage("Save failed.")
			}
		case "q", "quit":
			return true, nil
		default:
			printSystemMessage("Unknown command %q.", cmd)
		}
	}
}

func askQuestion(engine *nous.Engine, scanner *bufio.Scanner, render func(string) (string, error)) (bool, error) {
	view, err := engine.NextQuestion()
	if err != nil {
		printSystemMessage("The deck is spent; the round must end.")
		endByThread(engine)
		return false, nil
	}

	text := fmt.Sprintf("## %s\n\n%s\n", view.Title, view.Text)
	if out, rerr := render(text); rerr == nil {
		fmt.Print(out)
	} else {
		fmt.Println(text)
	}

	letters := make([]string, 0, len(view.Choices))
	for letter := range view.Choices {
		letters = append(letters, letter)
	}
	sort.Strings(letters)
	for _, letter := range letters {
		fmt.Printf("  %s) %s\n", letter, view.Choices[letter])
	}

	for {
		answer, ok := prompt(scanner, "answer")
		if !ok {
			return true, nil
		}
		result, err := engine.EvaluateAnswer(strings.ToUpper(answer))
		if err != nil {
			printSystemMessage("Pick one of the offered letters.")
			continue
		}
		if result.Explanation != "" {
			fmt.Printf("  %s\n", result.Explanation)
		}
		printSystemMessage(result.OutcomeText)
		return false, nil
	}
}

func drawFate(engine *nous.Engine, scanner *bufio.Scanner, render func(string) (string, error)) {
	card, err := engine.DrawFateCard()
	if err != nil {
		printSystemMessage("No fate to draw: %v.", err)
		return
	}

	text := fmt.Sprintf("## %s\n\n%s\n", card.Title, card.Text)
	if out, rerr := render(text); rerr == nil {
		fmt.Print(out)
	} else {
		fmt.Println(text)
	}

	labels := engine.FateButtonLabels()
	for i, label := range labels {
		if label != "" {
			fmt.Printf("  %d) %s\n", i+1, label)
		}
	}

	choice, ok := prompt(scanner, "choose")
	if !ok {
		return
	}
	index, err := strconv.Atoi(choice)
	if err != nil {
		index = 0
	} else {
		index--
	}
	flavor, err := engine.ChooseFateOption(index)
	if err != nil {
		printSystemMessage("The card slips away: %v.", err)
		return
	}
	if flavor != "" {
		printSystemMessage(flavor)
	}
	printSystemMessage("The card takes hold next round.")
}

// checkThread ends the round when the thread is spent. Returns over=true when
// the round ended, done=true when the whole game should stop.
func checkThread(engine *nous.Engine) (over bool, done bool) {
	if engine.Snapshot().Thread > 0 {
		return false, false
	}
	endByThread(engine)
	return true, false
}

func endByThread(engine *nous.Engine) {
	if engine.State().RoundPassed {
		engine.EndRound(domain.OutcomeWin)
		printSystemMessage("The thread ran out, but the round was already won.")
	} else {
		engine.EndRound(domain.OutcomeLose)
		printSystemMessage("The thread ran out. A life is lost.")
	}
}

func printStatus(snap domain.Snapshot) {
	fmt.Printf("[lives %d | score %d | round score %d | thread %d | tier %s]\n",
		snap.Lives, snap.Score, snap.RoundScore, snap.Thread, snap.DifficultyLevel)
}
