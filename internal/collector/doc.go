// Package collector implements the per-source adapters that feed the
// discovery pipeline, plus the shared fetch plumbing they rely on: a
// Colly-based page fetcher, a retrying JSON API client with per-host rate
// limiting, a JS-shell detector, and an optional headless renderer. Every
// adapter returns already-normalized records and degrades to zero records on
// failure; static last-resort tables inside the adapters guarantee their
// sources still contribute when live endpoints are down.
package collector
