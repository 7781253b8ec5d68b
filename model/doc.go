// Package model defines the vendor-neutral model client boundary used by
// the agent loop, plus a deterministic mock implementation for tests and
// examples. Provider adapters live in the openai and anthropic subpackages.
package model
