// Package nab provides an anti-detection fetch client that disguises
// outbound HTTP requests as organic browser traffic and converts arbitrary
// response payloads into clean, LLM-consumable markdown.
//
// The pipeline is: a version catalog tracks real-world browser releases, a
// profile generator builds internally consistent request fingerprints from
// it, an accelerated client applies a fingerprint to fetches and rotates
// identity on block signals, an arena buffer assembles streamed chunks, and
// a content router converts the finished bytes to markdown.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., catalog/, fingerprint/, http/,
// content/, sqlite/).
package nab
