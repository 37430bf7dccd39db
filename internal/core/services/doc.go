// Package services contains the core application logic: the ingestion
// pipeline, similarity retrieval, prompt composition, and the chat
// orchestrator. Services depend only on the port interfaces, so every
// external collaborator (embedding provider, LLM, vector index) can be
// swapped without touching this package.
package services
