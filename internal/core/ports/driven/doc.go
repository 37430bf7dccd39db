// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EmbeddingService: Generates vector embeddings for chunks and queries
//   - VectorIndex: Persistent vector storage and cosine similarity search
//   - LLMService: Chat completion for grounded and conversational answering
//   - PromptStore: LLM prompt templates (persona, grounded answer)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - CalendarService / TasksService: Google productivity pass-through.
//     When nil the HTTP surface reports the feature as unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
