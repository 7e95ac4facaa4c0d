// Package main is the entry point for the slicectl CLI.
//
// slicectl provisions multi-cluster KubeSlice topologies on Linode
// Kubernetes Engine: a controller cluster running the KubeSlice control
// plane, worker clusters running Istio and the KubeSlice operator, and a
// slice connecting them. A sample application can be deployed split
// across the workers to exercise the slice.
//
// Commands: init, apply, status, destroy.
//
// For detailed usage information, run:
//
//	slicectl --help
package main

import (
	"fmt"
	"os"

	"github.com/sliceops/slicectl/cmd/slicectl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
