// Package types defines the core types and interfaces used throughout hostgen.
// This includes the Generation model shared by the resolver, the store and
// the reconciliation engine, and the FS abstraction every component writes
// through.
package types
