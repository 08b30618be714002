package ports

import (
	"context"

	"github.com/aretw0/nous/pkg/domain"
)

// DeckLoader supplies validated decks to the engine. The engine itself only
// consumes in-memory slices; loading from files or network lives behind this
// port so the core stays synchronous after startup.
type DeckLoader interface {
	// Questions returns the validated question deck.
	Questions(ctx context.Context) ([]domain.Question, error)

	// FateCards returns the validated fate deck.
	FateCards(ctx context.Context) ([]domain.FateCard, error)
}
