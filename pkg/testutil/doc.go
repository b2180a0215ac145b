// Package testutil provides in-memory environments for testing hostgen
// components.
//
// A TestEnvironment holds a memory filesystem laid out with the standard
// configuration and store directories, plus a command Recorder standing in
// for the shell. Tests populate configuration through the environment
// helpers and then assert against the filesystem or the recorded commands.
//
//	env := testutil.NewTestEnvironment(t)
//	env.WriteManager("apt", `install = "apt install #:?"`)
//	env.WithFileTree(testutil.FileTree{
//	    "imports": testutil.FileTree{"base.toml": "[managers.apt]\nitems = [\"git\"]\n"},
//	})
package testutil
