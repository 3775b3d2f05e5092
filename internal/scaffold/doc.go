// Package scaffold initializes Git repositories with standard project files,
// optional GitHub remotes, and an initial tagged commit.
package scaffold
