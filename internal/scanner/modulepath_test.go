package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/raptor-audit/cairo-parser/internal/scanner"
)

func TestDeriveModulePath(t *testing.T) {
	tests := []struct {
		name string
		file string
		root string
		want string
	}{
		{
			name: "src relative nested file",
			file: "/repo/src/math/delta.cairo",
			root: "/repo",
			want: "math::delta",
		},
		{
			name: "lib.cairo collapses to parent",
			file: "/repo/src/math/lib.cairo",
			root: "/repo",
			want: "math",
		},
		{
			name: "mod.cairo collapses to parent",
			file: "/repo/src/mod.cairo",
			root: "/repo",
			want: "",
		},
		{
			name: "no src ancestor falls back to root",
			file: "/repo/contracts/foo.cairo",
			root: "/repo",
			want: "contracts::foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanner.DeriveModulePath(tt.file, tt.root)
			assert.Equal(t, tt.want, got)
		})
	}
}
