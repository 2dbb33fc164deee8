// Package dbtest menyediakan *gorm.DB postgres mode DryRun untuk test:
// SQL dibangun lengkap oleh dialect postgres tapi tidak pernah dikirim.
package dbtest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Statement struct {
	SQL  string
	Vars []any
}

// Recorder mencatat setiap statement yang melewati callback gorm.
type Recorder struct {
	mu    sync.Mutex
	stmts []Statement
}

func (r *Recorder) record(tx *gorm.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vars := make([]any, len(tx.Statement.Vars))
	copy(vars, tx.Statement.Vars)
	r.stmts = append(r.stmts, Statement{SQL: tx.Statement.SQL.String(), Vars: vars})
}

func (r *Recorder) Statements() []Statement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Statement, len(r.stmts))
	copy(out, r.stmts)
	return out
}

// Last: statement terakhir; kosong kalau belum ada.
func (r *Recorder) Last() Statement {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stmts) == 0 {
		return Statement{}
	}
	return r.stmts[len(r.stmts)-1]
}

// DryRun membuka dialect postgres tanpa koneksi.
func DryRun(t testing.TB) (*gorm.DB, *Recorder) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=schoolhub dbname=schoolhub sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)

	rec := &Recorder{}
	cb := db.Callback()
	require.NoError(t, cb.Create().After("gorm:create").Register("dbtest:create", rec.record))
	require.NoError(t, cb.Query().After("gorm:query").Register("dbtest:query", rec.record))
	require.NoError(t, cb.Update().After("gorm:update").Register("dbtest:update", rec.record))
	require.NoError(t, cb.Delete().After("gorm:delete").Register("dbtest:delete", rec.record))
	return db, rec
}
