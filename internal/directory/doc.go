// Package directory provides the domain logic for the resource directory browser.
//
// This package is independent of any UI or transport layer. The web server,
// the CLI and tests all drive it the same way.
//
// # Architecture
//
// The package is organized around a few small pieces:
//
//   - Store: the write-once dataset, built once from a [Loader] result.
//   - Vocabulary: distinct category and subcategory labels for filter choices.
//   - Query Engine: [Filter] narrows the dataset to records matching [Criteria].
//   - Session: per-visitor criteria and selected record.
//   - Browser: the view state machine (Loading, Loaded, LoadFailed) that ties
//     the pieces together and drives a [Presenter].
//
// # Filtering
//
// A record is visible when all three predicates hold:
//
//	text:        SearchBlock contains the lowercased, trimmed query
//	category:    "all", or the raw Categories string contains the value
//	subcategory: "all", or the raw Subcategories string contains the value
//
// Category and subcategory matching is raw substring containment, so "Art"
// also matches "Arts & Crafts". [MatchExactToken] switches to exact matching
// against the trimmed comma-separated tokens.
//
// # Selection
//
// Selecting a record is independent of filtering. Changing criteria never
// clears the selection, even when the selected record stops matching.
//
// # Error Handling
//
// Load failures are returned as [*LoadError]. Callers show the fixed
// [LoadFailedMessage] to end users and log the technical error. Codes for
// support reference are produced by [MapError]:
//
//   - SRC001-SRC004: data source errors (transport, status, payload, timeout)
//   - REC001: record not found
//   - RATE001: rate limited
package directory
