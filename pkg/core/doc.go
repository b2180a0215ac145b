// Package core orchestrates hostgen's lifecycle operations: committing the
// user configuration as a new generation, building (reconciling the host
// toward the current generation), rollback, listing, diffing and
// maintenance of the store, and the package-manager wide sync and upgrade.
//
// # Build
//
// A build compares the current generation against the last generation
// that was built. For every backend with changes, in name order, the
// additions are installed and then the removals are removed. Each backend
// action is bracketed by its pre and post hooks and the whole build by
// pre_build and post_build. The built pointer moves only after every
// backend succeeded, so a failed build is retried in full by the next
// build.
//
// # Locking
//
// Every operation that writes the store holds the process lock for its
// duration. Read-only operations (List, Diff, Managers, IsUnlocked) do
// not take it.
package core
