// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EmbeddingService: Generates vector embeddings. Both ingestion and
//     query paths require it, with the same model on both.
//   - VectorStore: Durable chunk vector storage with exact cosine search.
//   - LLMService: Streaming answer generation.
//
// # Optional Interfaces
//
//   - PromptStore: User-editable prompt templates. When nil, services use
//     embedded defaults.
//   - SettingsStore: Application configuration persistence.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
