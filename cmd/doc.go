// Package cmd provides the command-line interface for lectern.
//
// This package implements the CLI commands using the Cobra framework.
//
// # Available Commands
//
//   - serve: Start the HTTP server, optionally reloading a content directory
//   - show: Print one resolved document, lesson, blog post or category
//   - list: List documents, course lessons and blog categories
//   - validate: Check a catalog against its authoring rules
//   - config show: Print the effective configuration
//   - config validate: Report configuration errors and warnings
//   - health: Query the health endpoint of a running server
//   - version: Print build information
//
// # Command Examples
//
//	// Serve a content directory with live reload
//	lectern serve --content-dir ./content --watch
//
//	// Print the Spanish rendition of a document as YAML
//	lectern show doc coroutines-basics --locale es --format yaml
//
//	// List the Kotlin course in Spanish
//	lectern list kotlin --locale es
//
// # Configuration Integration
//
// Commands respect configuration from multiple sources in order of precedence:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables (LECTERN_*, e.g. LECTERN_SERVER_PORT)
//  3. Configuration file (.lectern.yml, or --config, or LECTERN_CONFIG_FILE)
//  4. Default values (lowest priority)
//
// # Error Handling
//
// Unknown ids and unsupported locales end the command with a message and
// exit code 1. With content.strict set, serve, show and list refuse a
// catalog that fails validation.
package cmd
