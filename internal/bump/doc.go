// Package bump locates semantic version strings in project files and advances
// their major, minor, or patch segments, optionally committing and tagging the
// result.
package bump
