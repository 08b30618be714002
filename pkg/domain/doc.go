/*
Package domain contains the core domain models for the Nous rules engine.

It defines the entities of the game: questions with tiered difficulty, fate
cards with their effect union, and the GameState aggregate that the state
machine owns. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Question / Answer: a deck entry with exactly three classed answers.
  - FateCard / Choice / Effect: a random event card offering up to three
    choices, each with an optional tagged effect.
  - GameState: the runtime snapshot of one game session (resources, round
    lifecycle, traits, decks progress).
  - Snapshot / QuestionView / CardView: flat presentations for the host.
*/
package domain
