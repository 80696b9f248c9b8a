// Package main provides the entry point for the tagdiff CLI tool.
package main

import (
	"github.com/agentstation/tagdiff/cmd/tagdiff/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
