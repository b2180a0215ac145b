package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/hostgen/cmd/hostgen"
	"github.com/arthur-debert/hostgen/internal/version"
)

func main() {
	header := &doc.GenManHeader{
		Title:   "HOSTGEN",
		Section: "1",
		Source:  "hostgen " + version.Version,
		Manual:  "hostgen manual",
	}

	if err := doc.GenMan(hostgen.NewRootCmd(), header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
