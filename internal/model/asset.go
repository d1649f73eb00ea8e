package model

// Asset is a non-.cairo file discovered under a scanned root (Scarb.toml,
// README, fixtures). It is recorded purely for informational completeness
// of the scan output and is never itself analyzed.
type Asset struct {
	Path       string
	ModulePath string
	Size       int64
}
