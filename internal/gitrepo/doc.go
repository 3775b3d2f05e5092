// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for initializing repositories, wiring remotes,
// and creating commits and tags, along with remote URL parsing utilities
// consumed by the scaffold and bump services.
package gitrepo
