// Package internal contains the core implementation packages for lectern.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - locale: Supported locales, Accept-Language negotiation and URL prefixes
//   - content: Canonical record types, content blocks and partial patches
//   - store: Immutable catalog snapshots with their validation rules
//   - loader: Embedded seed catalog and on-disk catalog directories
//   - overlay: Merging locale patches onto canonical records
//   - registry: The current snapshot, swapped atomically on reload
//   - catalog: The read API resolving records for a locale
//   - messages: Localized UI strings for pages and error bodies
//   - renderer: templ page shells for the HTML preview
//   - server: HTTP API, preview pages, middleware and reload notifications
//   - watcher: Debounced file system monitoring of a catalog directory
//   - config, logging, errors, monitoring, version: ambient infrastructure
//
// # Data Flow
//
// A loader builds a store, the registry publishes it, and the catalog
// service resolves every lookup against the snapshot current at call time.
// Canonical records are never mutated; a locale view is computed per lookup
// and untranslated fields fall back to English.
//
// The watcher rebuilds the store when catalog files change. A failed reload
// keeps the previous snapshot and is reported through registry events, which
// the server forwards to WebSocket clients and the health endpoint.
package internal
