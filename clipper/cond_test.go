package clipper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/firodj/clipperlift/clipper/il"
)

func TestPredicateNames(t *testing.T) {
	assert.Equal(t, "", PredAlways.CCName())
	assert.Equal(t, "clt", PredSGT.CCName())
	assert.Equal(t, "ceq", PredEQ.CCName())
	assert.Equal(t, "cne", PredNE.CCName())
	assert.Equal(t, "cgeu", PredULE.CCName())
	assert.Equal(t, "fn", PredNever.CCName())
}

func TestPredicateCond(t *testing.T) {
	assert.Nil(t, PredAlways.Cond())
	assert.Equal(t, "z", PredEQ.Cond().String())
	assert.Equal(t, "!z", PredNE.Cond().String())
	assert.Equal(t, "(n ^ v)", PredSLT.Cond().String())
	assert.Equal(t, "(c || z)", PredULE.Cond().String())
	assert.Equal(t, "!c", PredUGE.Cond().String())
	assert.Equal(t, "false", PredNever.Cond().String())
}

func TestPredicateFlags(t *testing.T) {
	assert.Equal(t, il.FlagsNone, PredAlways.Flags())
	assert.Equal(t, il.FlagZ, PredEQ.Flags())
	assert.Equal(t, il.FlagZ|il.FlagN|il.FlagV, PredSLE.Flags())
	assert.Equal(t, il.FlagC, PredULT.Flags())
}

func TestFlagsWritten(t *testing.T) {
	assert.Equal(t, il.FlagsAll, FlagsWritten("addw"))
	assert.Equal(t, il.FlagsAll, FlagsWritten("cmpq"))
	assert.Equal(t, il.FlagsAll, FlagsWritten("shai"))
	assert.Equal(t, il.FlagsNone, FlagsWritten("loadw"))
	assert.Equal(t, il.FlagsNone, FlagsWritten(OpB))
	assert.Equal(t, il.FlagsNone, FlagsWritten("storw"))
}
