// Package generations manages the on-disk generation store.
//
// Each generation is an immutable numbered directory holding a commit
// message and a serialized generation. Two pointer files, current and
// built, name the generation to apply and the one last applied. Both
// pointers protect their target from deletion.
//
// Maintenance (maintenance.go) removes consecutive duplicates and
// renumbers generations densely from 1.
package generations
