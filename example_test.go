package nous_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/nous"
)

// ExampleNew shows the minimal embedding flow: create an engine, start a
// session and inspect the table.
func ExampleNew() {
	ctx := context.Background()

	eng, err := nous.New(ctx, nous.WithSeed(1))
	if err != nil {
		log.Fatal(err)
	}

	eng.InitializeGame(3)
	eng.StartNewRound()

	snap := eng.Snapshot()
	fmt.Printf("lives=%d thread=%d round=%d\n", snap.Lives, snap.Thread, snap.RoundNumber)
	// Output: lives=4 thread=4 round=2
}
