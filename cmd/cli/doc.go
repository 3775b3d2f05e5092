// Package cli assembles the repokit command hierarchy, configuration loading,
// and structured logging.
package cli
