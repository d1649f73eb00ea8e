package stmtparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raptor-audit/cairo-parser/internal/model"
	"github.com/raptor-audit/cairo-parser/internal/stmtparse"
)

func TestParseStorageAccess(t *testing.T) {
	body := `let v = self.storage.balance.read();
self.storage.balance.write(v + 1);`
	stmts := stmtparse.Parse(body, 10)
	require.Len(t, stmts, 2)

	assert.Equal(t, model.StmtStorageRead, stmts[0].Kind)
	assert.Equal(t, "v", stmts[0].Defined)

	assert.Equal(t, model.StmtStorageWrite, stmts[1].Kind)
	assert.Equal(t, "balance", stmts[1].StorageVar)
	assert.Contains(t, stmts[1].Used, "v")
}

func TestParseIfElseReturn(t *testing.T) {
	body := `if x {
return 1;
} else {
return 2;
}`
	stmts := stmtparse.Parse(body, 1)
	var kinds []model.StatementKind
	for _, s := range stmts {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []model.StatementKind{
		model.StmtIf, model.StmtReturn, model.StmtElse, model.StmtReturn, model.StmtBlockClose,
	}, kinds)
}

func TestParseCallStatement(t *testing.T) {
	stmts := stmtparse.Parse(`dispatcher.transfer(to, amount);`, 5)
	require.Len(t, stmts, 1)
	assert.Equal(t, model.StmtCall, stmts[0].Kind)
	assert.Equal(t, "dispatcher.transfer", stmts[0].Callee)
}
