package clipper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFlow(t *testing.T) {
	tests := []struct {
		name string
		addr uint32
		data []byte
		want Flow
	}{
		{"fallthrough", 0, []byte{0x12, 0x80},
			Flow{Kind: FlowFallthrough}},
		{"branch", 0x1000, []byte{0x90, 0x49, 0x00, 0x10},
			Flow{Kind: FlowBranch, Target: 0x2000, HasTarget: true}},
		{"condbranch", 0x1000, []byte{0x93, 0x49, 0x00, 0x10},
			Flow{Kind: FlowCondBranch, Target: 0x2000, HasTarget: true}},
		{"never taken branch", 0x1000, []byte{0x9f, 0x49, 0x00, 0x10},
			Flow{Kind: FlowFallthrough}},
		{"indirect branch", 0, []byte{0x30, 0x48},
			Flow{Kind: FlowUnknown}},
		{"delayed branch", 0x1000, []byte{0x90, 0x51, 0x00, 0x10},
			Flow{Kind: FlowBranch, Target: 0x2000, HasTarget: true, DelaySlot: true}},
		{"call", 0x1000, []byte{0x9f, 0x45, 0x00, 0x10},
			Flow{Kind: FlowCall, Target: 0x2000, HasTarget: true}},
		{"indirect call", 0, []byte{0x3f, 0x44},
			Flow{Kind: FlowCall}},
		{"return", 0, []byte{0x0f, 0x13},
			Flow{Kind: FlowReturn}},
		{"trap", 0, []byte{0x21, 0x12},
			Flow{Kind: FlowTrap}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Decode(tt.addr, srcAt(tt.addr, tt.data...))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ClassifyFlow(in))
		})
	}
}

func TestClassifyFlowDegraded(t *testing.T) {
	in, err := Decode(0, srcAt(0, 0x00, 0x15))
	assert.Error(t, err)
	assert.Equal(t, FlowUnknown, ClassifyFlow(in).Kind)
}
