// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package adder

// Single bit gates. Inputs are 0 or 1, only the lowest bit is considered.

// And returns a AND b.
//
//	Function: out = a && b
//
func And(a, b uint8) uint8 { return a & b & 1 }

// Or returns a OR b.
//
//	Function: out = a || b
//
func Or(a, b uint8) uint8 { return (a | b) & 1 }

// Xor returns a XOR b.
//
//	Function: out = (a && !b) || (!a && b)
//
func Xor(a, b uint8) uint8 { return (a ^ b) & 1 }

// Majority returns 1 if at least two of its inputs are 1.
//
//	Function: out = a && b || a && c || b && c
//
func Majority(a, b, c uint8) uint8 {
	return Or(Or(And(a, b), And(a, c)), And(b, c))
}

// HalfAdder adds two bits.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(a, b uint8) (s, c uint8) {
	return Xor(a, b), And(a, b)
}

// FullAdder adds three bits.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(a, b, cin uint8) (s, cout uint8) {
	return Xor(Xor(a, b), cin), Majority(a, b, cin)
}

// Mux returns a if sel is 0, b otherwise.
//
func Mux(a, b, sel uint8) uint8 {
	if sel&1 != 0 {
		return b
	}
	return a
}

// rippleAdd adds a and b, given LSB first, with carry in cin.
// It returns the sum bits and the carry chain c[0..n], both LSB first.
//
func rippleAdd(a, b []uint8, cin uint8) (sums, carries []uint8) {
	sums = make([]uint8, len(a))
	carries = make([]uint8, len(a)+1)
	carries[0] = cin & 1
	for i := range a {
		sums[i], carries[i+1] = FullAdder(a[i], b[i], carries[i])
	}
	return sums, carries
}
