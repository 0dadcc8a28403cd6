// Package buildinfo holds version data stamped at link time, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/notekeeper/internal/buildinfo.Version=v1.0.0" ./cmd/notekeeper
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes the version banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
