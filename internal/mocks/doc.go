// Package mocks provides in-memory store implementations for handler
// tests. They honor the same sentinel-error contract as the Postgres
// implementations.
package mocks
