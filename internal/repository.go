package internal

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/firodj/clipperlift/clipper/il"
	"github.com/firodj/clipperlift/models"
)

// SQLRepository persists one analysis session. Every row carries the session
// id, so several runs can share a database file.
type SQLRepository struct {
	db      *bun.DB
	session uuid.UUID
}

func NewSQLRepository(dsn string) *SQLRepository {
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		panic(err)
	}

	repo := &SQLRepository{
		db:      bun.NewDB(sqldb, sqlitedialect.New()),
		session: uuid.New(),
	}

	repo.db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.FromEnv("BUNDEBUG"),
	))

	return repo
}

func (repo *SQLRepository) Session() uuid.UUID {
	return repo.session
}

func (repo *SQLRepository) DB() *bun.DB {
	return repo.db
}

func (repo *SQLRepository) Close() error {
	return repo.db.Close()
}

func (repo *SQLRepository) CreateTables(ctx context.Context) error {
	for _, model := range []interface{}{
		(*models.Instruction)(nil),
		(*models.BasicBlock)(nil),
		(*models.Function)(nil),
	} {
		if _, err := repo.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// SaveDocument writes every decoded line, block and function the document
// holds under this repository's session id.
func (repo *SQLRepository) SaveDocument(ctx context.Context, doc *Document) error {
	var instrs []models.Instruction
	doc.InstrManager.Each(func(line *Line) {
		instrs = append(instrs, models.Instruction{
			SessionID: repo.session,
			Address:   line.Instr.Address,
			Length:    line.Instr.Length,
			Mnemonic:  line.Instr.MnemonicText(),
			Text:      line.Instr.String(),
			Lifted:    il.Sequence(line.Lifted),
		})
	})
	if len(instrs) > 0 {
		if _, err := repo.db.NewInsert().Model(&instrs).Exec(ctx); err != nil {
			return err
		}
	}

	var bbs []models.BasicBlock
	doc.BBManager.Each(func(bb *BasicBlock) {
		bbs = append(bbs, models.BasicBlock{
			SessionID:     repo.session,
			Address:       bb.Address,
			LastAddress:   bb.LastAddress,
			BranchAddress: bb.BranchAddress,
		})
	})
	if len(bbs) > 0 {
		if _, err := repo.db.NewInsert().Model(&bbs).Exec(ctx); err != nil {
			return err
		}
	}

	var funs []models.Function
	doc.FunManager.Each(func(fun *Function) {
		funs = append(funs, models.Function{
			SessionID: repo.session,
			Address:   fun.Address,
			Name:      fun.Name,
			Size:      fun.Size,
		})
	})
	if len(funs) > 0 {
		if _, err := repo.db.NewInsert().Model(&funs).Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
