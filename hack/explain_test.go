package hack_test

import (
	"testing"

	"github.com/db47h/bitstep/hack"
	"github.com/stretchr/testify/assert"
)

func TestExplain(t *testing.T) {
	p := parse(t, "@sum\n@12\nD=D+M\nM=D\nD;JGT\nAM=M-1;JEQ\n0;JMP\nD=A\nA=M\nD=M\nD=D%A\nM=-1\n")
	s := hack.State{A: 5, D: 3, RAM: map[uint16]uint16{5: 4}}
	in := p.Instructions

	td := []struct {
		i       int
		explain string
		title   string
		detail  string
	}{
		{0, "A = 16 (sum)", "A-instruction", "A = 16 (sum)"},
		{1, "A = 12", "A-instruction", "A = 12"},
		{2, "D = D+RAM[5] (=3+4)", "C-instruction", "D = 7"},
		{3, "RAM[5] = D (=3)", "Memory write", "RAM[5] = D = 3"},
		{4, "D (=3); jump if > 0", "Conditional jump", "D = 3 > 0? Yes → jump to 5"},
		{5, "A, RAM[5] = RAM[5]-1 (=4-1), then jump if = 0", "Computation with jump", "AM = 3, 3 = 0? No → continue"},
		{6, "0; jump always", "Unconditional jump", "Jump to 5"},
		{7, "D = A (=5)", "Computation", "D = A = 5"},
		{8, "A = RAM[5] (=4)", "Follow pointer", "A = RAM[5] = 4"},
		{9, "D = RAM[5] (=4)", "Memory read", "D = RAM[5] = 4"},
		{10, "D = D%A", "Computation", "D = D%A = 0"},
		{11, "RAM[5] = -1", "Memory write", "RAM[5] = -1 = -1"},
	}
	for _, d := range td {
		assert.Equal(t, d.explain, hack.Explain(in[d.i], s), in[d.i].Raw)
		info := hack.ExplainStep(in[d.i], s)
		assert.Equal(t, d.title, info.Title, in[d.i].Raw)
		assert.Equal(t, d.detail, info.Detail, in[d.i].Raw)
	}
}
