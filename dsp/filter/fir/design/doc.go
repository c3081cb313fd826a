// Package design synthesizes linear-phase FIR coefficients.
//
// Two methods are provided. The cosine method builds an ideal magnitude
// mask with raised-cosine transitions on a dense frequency grid, applies a
// linear phase term, inverse-transforms it and truncates the result with a
// window. The equiripple method translates the shape into pass and stop
// bands and runs the Parks-McClellan Remez exchange ([Remez]).
//
// All designed filters are symmetric, so their group delay is order/2
// samples at every frequency.
package design
