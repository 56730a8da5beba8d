// Package source provides directory.Loader implementations for the data
// sources the directory can be published to: a local JSON file, a JSON
// document over HTTP, an S3 object, or a table in PostgreSQL or SQLite.
//
// Every JSON-based source shares [Decode], which accepts only a JSON array of
// record objects. Anything else is reported as directory.ErrMalformed so that
// a broken payload is never mistaken for an empty directory.
package source
