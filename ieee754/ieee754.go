// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package ieee754 generates the step-by-step encoding of a decimal number
// into the IEEE-754 single precision format.
//
// The encoder follows the pen and paper method: integer and fractional parts
// are converted to binary separately, then normalized. The mantissa is
// truncated, not rounded, and denormal numbers are approximated: a number
// whose biased exponent is not positive is encoded with E = 0 and its raw
// mantissa bits.
//
package ieee754

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/db47h/bitstep"
	"github.com/pkg/errors"
)

// Format constants.
//
const (
	Bias         = 127
	ExponentBits = 8
	MantissaBits = 23
	// maximum number of fraction bits computed
	FractionBits = 24
	// exponent of denormal numbers
	DenormalExp = 1 - Bias
)

// Special identifies special encodings.
//
type Special int

// Special encodings.
//
const (
	Normal Special = iota
	Zero
	Infinity
	Denormal
)

func (s Special) String() string {
	switch s {
	case Zero:
		return "zero"
	case Infinity:
		return "infinity"
	case Denormal:
		return "denormalized"
	}
	return "normal"
}

// Step phases, used as active tags.
//
const (
	PhaseSign      = "sign"
	PhaseSpecial   = "special"
	PhaseInteger   = "integer"
	PhaseFraction  = "fraction"
	PhaseFull      = "full"
	PhaseNormalize = "normalize"
	PhaseOverflow  = "overflow"
	PhaseDenormal  = "denorm"
	PhaseExponent  = "exponent"
	PhaseMantissa  = "mantissa"
	PhaseAssemble  = "assemble"
)

// Step is a step of the encoding trace.
//
type Step struct {
	bitstep.Info
	Phase string
	// Intermediate computations, like the first multiplications of the
	// fraction conversion.
	SubSteps []string
}

var _ bitstep.Stepper = Step{}

// Result is the encoding of a number.
//
type Result struct {
	Input    float64
	Sign     uint8
	Exponent string // 8 bits, MSB first
	Mantissa string // 23 bits, MSB first
	Bits     uint32
	Hex      string
	// Unbiased and biased exponents. Only valid for Normal and Denormal
	// encodings.
	Exp, Biased int
	Special     Special
	// Overflow is set when a finite input is too large and encoded as
	// infinity.
	Overflow bool
	Steps    []Step
	// Err is set if the input is not a number. Steps then holds a single
	// error step.
	Err error
}

// Value returns the float32 value of the encoding.
//
func (r *Result) Value() float32 {
	return math.Float32frombits(r.Bits)
}

func (r *Result) push(phase, title, desc, detail string, sub ...string) {
	r.Steps = append(r.Steps, Step{
		Info: bitstep.Info{
			Title:  title,
			Desc:   desc,
			Detail: detail,
			Active: bitstep.Active(phase),
		},
		Phase:    phase,
		SubSteps: sub,
	})
}

// done assembles the encoding and marks the last step final.
//
func (r *Result) done(exp, mant string) *Result {
	r.Exponent = exp
	r.Mantissa = mant
	v, _ := strconv.ParseUint(strconv.Itoa(int(r.Sign))+exp+mant, 2, 32)
	r.Bits = uint32(v)
	r.Hex = fmt.Sprintf("0x%08X", r.Bits)
	r.Steps[len(r.Steps)-1].Final = true
	return r
}

var (
	zeroExp  = strings.Repeat("0", ExponentBits)
	onesExp  = strings.Repeat("1", ExponentBits)
	zeroMant = strings.Repeat("0", MantissaBits)
)

// Encode parses s as a decimal number and returns its encoding.
//
// If s is not a number (this includes "NaN"), the result's Err field is set
// and Steps holds a single error step.
//
func Encode(s string) *Result {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) || math.IsNaN(f) {
		err = errors.Wrapf(bitstep.ErrInvalidNumber, "%q", s)
		return &Result{
			Steps: []Step{{Info: bitstep.ErrorInfo("Invalid input", err)}},
			Err:   err,
		}
	}
	return encode(f, s)
}

// EncodeFloat returns the encoding of f. It is equivalent to Encode with the
// shortest decimal representation of f.
//
func EncodeFloat(f float64) *Result {
	return Encode(strconv.FormatFloat(f, 'g', -1, 64))
}

func encode(f float64, input string) *Result {
	r := &Result{Input: f}
	if math.Signbit(f) {
		r.Sign = 1
	}
	abs := math.Abs(f)
	sign := "positive"
	if r.Sign == 1 {
		sign = "negative"
	}
	r.push(PhaseSign, "Sign", fmt.Sprintf("%s is %s", fmtFloat(f), sign), fmt.Sprintf("Sign bit S = %d", r.Sign))

	if abs == 0 {
		r.Special = Zero
		r.push(PhaseSpecial, "Special case: zero", "Zero has a dedicated representation.", "E = 0, M = 0 (all bits 0)")
		return r.done(zeroExp, zeroMant)
	}
	if math.IsInf(abs, 0) {
		r.Special = Infinity
		inf := "+Infinity"
		if r.Sign == 1 {
			inf = "-Infinity"
		}
		r.push(PhaseSpecial, "Special case: infinity", "Infinity is represented with E = 255, M = 0.", inf)
		return r.done(onesExp, zeroMant)
	}

	ip, frac := math.Modf(abs)
	intBin := "0"
	if ip > 0 {
		// the integer part can be way above 2^64
		n, _ := new(big.Float).SetFloat64(ip).Int(nil)
		intBin = n.Text(2)
	}
	r.push(PhaseInteger, "Integer part in binary",
		fmt.Sprintf("Integer part: %s", fmtFloat(ip)),
		fmt.Sprintf("%s₁₀ = %s₂", fmtFloat(ip), intBin))

	var fb strings.Builder
	var sub []string
	for x, i := frac, 0; i < FractionBits && x > 0; i++ {
		x *= 2
		if x >= 1 {
			fb.WriteByte('1')
			sub = append(sub, fmt.Sprintf("%.6f ≥ 1 → 1", x))
			x--
		} else {
			fb.WriteByte('0')
			sub = append(sub, fmt.Sprintf("%.6f < 1 → 0", x))
		}
	}
	fracBin := fb.String()
	if frac > 0 {
		if len(sub) > 5 {
			sub = sub[:5]
		}
		fd := fracDigits(input, frac)
		r.push(PhaseFraction, "Fractional part in binary",
			fmt.Sprintf("Fractional part: 0.%s", fd),
			fmt.Sprintf("0.%s₁₀ = 0.%s₂", fd, ellipsis(fracBin, 12)),
			sub...)
	}

	full := "0." + ellipsis(fracBin, 10)
	if ip > 0 {
		full = intBin + "."
		if fracBin == "" {
			full += "0"
		} else {
			full += ellipsis(fracBin, 10)
		}
	}
	r.push(PhaseFull, "Full binary representation", fmt.Sprintf("|%s| in binary", fmtFloat(f)), full+"₂")

	var mant string
	denorm := false
	switch {
	case ip > 0:
		r.Exp = len(intBin) - 1
		mant = intBin[1:] + fracBin
	case strings.IndexByte(fracBin, '1') < 0:
		// no leading one within reach of the fraction bits
		r.Exp = DenormalExp
		mant = fracBin
		denorm = true
	default:
		first := strings.IndexByte(fracBin, '1')
		r.Exp = -(first + 1)
		mant = fracBin[first+1:]
	}
	r.push(PhaseNormalize, "Normalize", "Rewrite as 1.M × 2^e",
		fmt.Sprintf("1.%s... × 2^%d", head(mant, 10), r.Exp))

	r.Biased = r.Exp + Bias
	if denorm {
		r.Biased = 0
	}
	mant = fit(mant)

	if r.Biased >= 255 {
		r.Special = Infinity
		r.Overflow = true
		r.push(PhaseOverflow, "Exponent overflow",
			fmt.Sprintf("Exponent %d + bias %d = %d ≥ 255", r.Exp, Bias, r.Exp+Bias),
			"Result: infinity")
		return r.done(onesExp, zeroMant)
	}
	if r.Biased <= 0 {
		r.Special = Denormal
		r.Biased = 0
		r.push(PhaseDenormal, "Denormalized number",
			fmt.Sprintf("Exponent %d + bias %d = %d ≤ 0", r.Exp, Bias, r.Exp+Bias),
			"Special representation with E = 0")
		return r.done(zeroExp, mant)
	}

	exp := bitstep.BinaryString(r.Biased, ExponentBits)
	r.push(PhaseExponent, "Biased exponent",
		fmt.Sprintf("E = e + bias = %d + %d", r.Exp, Bias),
		fmt.Sprintf("E = %d₁₀ = %s₂", r.Biased, exp))
	r.push(PhaseMantissa, "Mantissa", "The hidden bit (1.) is not stored.",
		fmt.Sprintf("M = %s...", mant[:8]))
	r.push(PhaseAssemble, "Assemble", "Concatenate S | E | M",
		fmt.Sprintf("%d | %s | %s...", r.Sign, exp, mant[:8]))
	return r.done(exp, mant)
}

// fit pads or truncates the mantissa bits to MantissaBits.
//
func fit(m string) string {
	if len(m) < MantissaBits {
		return m + strings.Repeat("0", MantissaBits-len(m))
	}
	return m[:MantissaBits]
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func ellipsis(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 12, 64)
}

// fracDigits returns the decimal digits of the fractional part, taken from
// the input text when it is written in plain decimal notation.
//
func fracDigits(input string, frac float64) string {
	if i := strings.IndexByte(input, '.'); i >= 0 && !strings.ContainsAny(input, "eExXpP") {
		if d := input[i+1:]; d != "" {
			return d
		}
	}
	s := strconv.FormatFloat(frac, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return "0"
}
