package lexparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raptor-audit/cairo-parser/internal/lexparse"
	"github.com/raptor-audit/cairo-parser/internal/model"
)

func TestParseContractWithFunction(t *testing.T) {
	src := `#[starknet::contract]
mod Foo {
    #[external(v0)]
    fn f(x: felt252) -> felt252 {
        return x;
    }
}
`
	fp := lexparse.Parse("a/foo.cairo", "a::foo", []byte(src))
	require.Len(t, fp.Declarations, 1)
	decl := fp.Declarations[0]
	assert.Equal(t, "Foo", decl.Name)
	assert.Equal(t, model.KindContract, decl.Kind)
	require.Len(t, decl.Functions, 1)
	fn := decl.Functions[0]
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, model.VisibilityExternal, fn.Visibility)
	require.Len(t, fn.Parameters, 1)
	assert.Equal(t, "x", fn.Parameters[0].Name)
	assert.Equal(t, "felt252", fn.Parameters[0].Type)
	require.True(t, fn.HasBody())
}

func TestParseUseWithBraceGroup(t *testing.T) {
	src := `use core::array::{ArrayTrait, Array};
mod M {}
`
	fp := lexparse.Parse("m.cairo", "m", []byte(src))
	require.Len(t, fp.Imports, 1)
	imp := fp.Imports[0]
	assert.Equal(t, "core::array", imp.Path)
	assert.ElementsMatch(t, []string{"ArrayTrait", "Array"}, imp.Symbols)
}

func TestParseUseSingleSymbol(t *testing.T) {
	src := `use crate::a::foo::Foo;
#[starknet::contract]
mod Bar {
}
`
	fp := lexparse.Parse("b/bar.cairo", "b::bar", []byte(src))
	require.Len(t, fp.Imports, 1)
	assert.Equal(t, "crate::a::foo", fp.Imports[0].Path)
	assert.Equal(t, []string{"Foo"}, fp.Imports[0].Symbols)
}

func TestParseStorageAndEvent(t *testing.T) {
	src := `#[starknet::contract]
mod Foo {
    #[storage]
    struct Storage {
        balance: felt252,
        owner: ContractAddress,
    }

    #[event]
    enum Event {
        Transfer: Transfer,
    }
}
`
	fp := lexparse.Parse("foo.cairo", "foo", []byte(src))
	require.Len(t, fp.Declarations, 1)
	decl := fp.Declarations[0]
	require.Len(t, decl.StorageVars, 2)
	assert.Equal(t, "balance", decl.StorageVars[0].Name)
	assert.Equal(t, "felt252", decl.StorageVars[0].Type)
	require.Len(t, decl.Events, 1)
	assert.Equal(t, "Event", decl.Events[0].Name)
	assert.Equal(t, "enum", decl.Events[0].Kind)
}

func TestParseUnclosedBodyRecordsParseError(t *testing.T) {
	src := `fn f() {
    return 1;
`
	fp := lexparse.Parse("f.cairo", "f", []byte(src))
	require.Empty(t, fp.Declarations)
	require.Len(t, fp.Functions, 1)
	fn := fp.Functions[0]
	assert.False(t, fn.HasBody())
	require.NotEmpty(t, fp.Warnings)
}

func TestParseFunctionWithTupleParameterType(t *testing.T) {
	src := `mod M {
    fn f(x: (felt252, felt252)) -> felt252 {
        return x;
    }
}
`
	fp := lexparse.Parse("a/m.cairo", "a::m", []byte(src))
	require.Len(t, fp.Declarations, 1)
	require.Len(t, fp.Declarations[0].Functions, 1)
	fn := fp.Declarations[0].Functions[0]
	assert.Equal(t, "f", fn.Name)
	require.Len(t, fn.Parameters, 1)
	assert.Equal(t, "x", fn.Parameters[0].Name)
	assert.Equal(t, "(felt252, felt252)", fn.Parameters[0].Type)
	require.Len(t, fn.Results, 1)
	assert.Equal(t, "felt252", fn.Results[0].Type)
}
