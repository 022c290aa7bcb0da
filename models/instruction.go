package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Instruction struct {
	bun.BaseModel

	ID        int64     `bun:",pk,autoincrement"`
	SessionID uuid.UUID `bun:"type:uuid"`
	Address   uint32
	Length    int
	Mnemonic  string
	Text      string
	Lifted    string
}
