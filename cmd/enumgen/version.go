package main

import "fmt"

// Set at build time via ldflags:
//
//	go build -ldflags "-X main.commit=$(git rev-parse HEAD) -X main.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	commit    = "unknown"
	buildTime = "unknown"
)

func version() string {
	return fmt.Sprintf("dev (commit: %s, built: %s)", shortCommit(), buildTime)
}

func shortCommit() string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
