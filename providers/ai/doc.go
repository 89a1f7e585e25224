// Package ai defines the vendor-agnostic core of the streaming pipeline:
// the prompt model, the provider capability interfaces, the normalized
// delta type produced by per-vendor frame decoders, and the orchestrator
// that drives one transport response through reassembly, decoding and
// handler delivery.
//
// Vendor specifics live in the subpackages (anthropic, openai, gemini);
// engine-name based construction lives in the gai subpackage.
package ai
