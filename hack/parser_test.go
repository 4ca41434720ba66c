package hack_test

import (
	"strconv"
	"testing"

	"github.com/db47h/bitstep/hack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `// test program
(START)
@R0      // predefined
D=M
@counter
M=D
@sum
@counter // same variable
@START
0;JMP
(END)
@END
@42
AMD=D+1;JGE
D&A
`
	p, err := hack.Parse(src)
	require.NoError(t, err)
	require.Equal(t, 12, p.Len())

	in := p.Instructions
	assert.Equal(t, hack.Instruction{Kind: hack.AInstr, Value: 0, Symbol: "R0", Line: 3, Raw: "@R0"}, in[0])
	assert.Equal(t, uint16(16), in[2].Value)
	assert.Equal(t, uint16(17), in[4].Value)
	assert.Equal(t, uint16(16), in[5].Value)
	assert.Equal(t, uint16(0), in[6].Value)
	assert.Equal(t, uint16(8), in[8].Value)
	assert.Equal(t, "", in[9].Symbol)
	assert.Equal(t, uint16(42), in[9].Value)

	c := in[10]
	assert.Equal(t, hack.CInstr, c.Kind)
	assert.Equal(t, hack.DestA|hack.DestM|hack.DestD, c.Dest)
	assert.Equal(t, hack.CompDPlusOne, c.Comp)
	assert.Equal(t, hack.JGE, c.Jump)
	assert.Equal(t, 14, c.Line)

	c = in[11]
	assert.Equal(t, hack.Dest(0), c.Dest)
	assert.Equal(t, hack.CompDAndA, c.Comp)
	assert.Equal(t, hack.JumpNone, c.Jump)

	assert.Equal(t, uint16(0), p.Symbols["START"])
	assert.Equal(t, uint16(8), p.Symbols["END"])
	assert.Equal(t, uint16(16), p.Symbols["counter"])
	assert.Equal(t, uint16(24576), p.Symbols["KBD"])
}

func TestParse_lenient(t *testing.T) {
	p, err := hack.Parse("D=D*A;JXX\n")
	require.NoError(t, err)
	in := p.Instructions[0]
	assert.Equal(t, hack.CompUnknown, in.Comp)
	assert.Equal(t, "D*A", in.CompText)
	assert.Equal(t, hack.JumpUnknown, in.Jump)
	assert.Equal(t, "JXX", in.JumpText)
}

func TestParse_errors(t *testing.T) {
	td := []struct {
		name string
		src  string
		line int
	}{
		{"unclosed label", "@0\n(LOOP\n", 2},
		{"empty label", "()", 1},
		{"invalid label", "(1abc)", 1},
		{"duplicate label", "(A1)\n@0\n(A1)\n", 3},
		{"predefined label", "(SP)\n", 1},
		{"empty symbol", "@0\n\n@", 3},
		{"invalid symbol", "@12ab", 1},
		{"too large", "@65536", 1},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := hack.Parse(d.src)
			require.Error(t, err)
			perr, ok := err.(*hack.ParseError)
			require.True(t, ok, "%T", err)
			assert.Equal(t, d.line, perr.Line)
		})
	}
	_, err := hack.Parse("@65535")
	assert.NoError(t, err)
}

func TestPredefined(t *testing.T) {
	p := hack.Predefined()
	for i := 0; i < 16; i++ {
		assert.Equal(t, uint16(i), p["R"+strconv.Itoa(i)])
	}
	assert.Equal(t, uint16(15), p["R15"])
	assert.Equal(t, uint16(4), p["THAT"])
	assert.Equal(t, uint16(16384), p["SCREEN"])
	// returns a copy
	p["SP"] = 42
	assert.Equal(t, uint16(0), hack.Predefined()["SP"])
}
