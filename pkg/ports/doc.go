/*
Package ports defines the driven ports (interfaces) for the Nous engine.

These interfaces decouple the rules core from external implementations,
allowing the engine to work with various save backends and deck sources.

# Key Interfaces

  - SaveStore: persists the serialized game state into a named slot
    (memory, local file, or Redis).
  - DeckLoader: supplies the validated question and fate decks
    (YAML/JSON files, or in-memory fixtures for tests).
*/
package ports
