package design

import "fmt"

// Shape selects the frequency-selective behavior of a filter.
type Shape int

const (
	// ShapeLowpass passes frequencies below the center frequency.
	ShapeLowpass Shape = iota
	// ShapeHighpass passes frequencies above the center frequency.
	ShapeHighpass
	// ShapeBandpass passes center +/- bandwidth/2.
	ShapeBandpass
	// ShapeNotch rejects center +/- bandwidth/2.
	ShapeNotch
)

var shapeNames = [...]string{
	ShapeLowpass:  "LPF",
	ShapeHighpass: "HPF",
	ShapeBandpass: "BPF",
	ShapeNotch:    "NOTCH",
}

// String returns the configuration name of the shape.
func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// ParseShape maps a configuration name to a shape. Unknown names map to
// [ShapeLowpass].
func ParseShape(name string) Shape {
	for s, n := range shapeNames {
		if n == name {
			return Shape(s)
		}
	}
	return ShapeLowpass
}

// Valid reports whether s is one of the defined shapes.
func (s Shape) Valid() bool {
	return s >= ShapeLowpass && s <= ShapeNotch
}

// HasBand reports whether the shape uses the bandwidth parameter.
func (s Shape) HasBand() bool {
	return s == ShapeBandpass || s == ShapeNotch
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	*s = ParseShape(string(text))
	return nil
}

// Method selects how coefficients are obtained.
type Method int

const (
	// MethodCosine designs from a raised-cosine magnitude mask.
	MethodCosine Method = iota
	// MethodEquiripple designs a minimax filter with the Remez exchange.
	MethodEquiripple
	// MethodExternal marks coefficients supplied by the caller.
	MethodExternal
)

var methodNames = [...]string{
	MethodCosine:     "Cosine",
	MethodEquiripple: "Tschebyscheff",
	MethodExternal:   "External",
}

// String returns the configuration name of the method.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod maps a configuration name to a method. Unknown names map to
// [MethodExternal].
func ParseMethod(name string) Method {
	for m, n := range methodNames {
		if n == name {
			return Method(m)
		}
	}
	return MethodExternal
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	*m = ParseMethod(string(text))
	return nil
}
