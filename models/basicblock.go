package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BasicBlock struct {
	bun.BaseModel

	ID            int64     `bun:",pk,autoincrement"`
	SessionID     uuid.UUID `bun:"type:uuid"`
	Address       uint32
	LastAddress   uint32
	BranchAddress uint32
}
