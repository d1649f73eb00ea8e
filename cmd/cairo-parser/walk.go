package main

import (
	"os"
	"path/filepath"
	"strings"
)

// walkCairoFiles visits every .cairo file under root, calling fn with its
// path and content. Read errors are skipped rather than propagated: this
// backs the optional --verify-lex pass, which should never abort a run.
func walkCairoFiles(root string, fn func(path string, content []byte)) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(path, ".cairo") {
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		fn(path, content)
		return nil
	})
}
