// Package ui renders command lifecycle events for human-readable output modes.
package ui
