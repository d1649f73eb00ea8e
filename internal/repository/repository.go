// Package repository detects the Cairo/Scarb project a scanned root belongs
// to, the way the teacher's project detector locates a Go/Java/Rust project
// root from a file path.
package repository

// Project describes the manifest-bearing root enclosing a scanned file tree.
type Project struct {
	// RootPath is the absolute path to the directory holding the marker file.
	RootPath string
	// Marker is the marker file that identified RootPath ("Scarb.toml",
	// "go.mod", ".git", ...).
	Marker string
	// Name is the project name extracted from the marker file, falling back
	// to the root directory's base name.
	Name string
}
