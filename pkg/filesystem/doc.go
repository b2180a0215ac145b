// Package filesystem implements types.FS on top of afero. NewOS serves
// the real machine and NewMemory backs tests; both go through the same
// adapter so they behave alike. AtomicWrite builds on any types.FS.
package filesystem
