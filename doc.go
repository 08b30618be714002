/*
Package nous is an embeddable rules engine for a cooperative trivia and
resource game.

A game session is a race to win rounds before lives run out. Each round the
table spends thread to reveal questions; answers pay points and move the
thread, and fate cards bend the rules for a round at a time. The engine owns
all of that arithmetic and lifecycle; rendering, input and transport belong
to the host.

# Basic Usage

	eng, err := nous.New(ctx)
	if err != nil {
	    log.Fatal(err)
	}

	eng.InitializeGame(3)
	eng.StartNewRound()

	eng.PullThread()
	view, err := eng.NextQuestion()
	// present view.Choices, collect a letter...
	result, err := eng.EvaluateAnswer("A")

Persistence is pluggable via ports.SaveStore (memory, file and Redis
adapters are provided); decks are pluggable via ports.DeckLoader, with an
embedded default deck served out of the box.
*/
package nous
