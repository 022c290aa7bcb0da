package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Function struct {
	bun.BaseModel

	ID        int64     `bun:",pk,autoincrement"`
	SessionID uuid.UUID `bun:"type:uuid"`
	Address   uint32
	Name      string
	Size      uint32
}
