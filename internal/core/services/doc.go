// Package services implements the driving port interfaces: the
// ingestion pipeline (chunk, embed, index) and the query pipeline
// (retrieve, prompt, generate, cite).
//
// Services orchestrate calls to driven ports and hold no provider or
// storage specifics of their own.
package services
