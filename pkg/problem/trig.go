package problem

// TrigFunc is one of the six right-triangle ratios.
type TrigFunc int

const (
	Sin TrigFunc = iota + 1
	Cos
	Tan
	Sec
	Csc
	Cot
)

var trigNames = [...]string{Sin: "sin", Cos: "cos", Tan: "tan", Sec: "sec", Csc: "csc", Cot: "cot"}

func (f TrigFunc) String() string {
	if f < Sin || f > Cot {
		return "?"
	}
	return trigNames[f]
}

// TriangleSide names a side relative to theta.
type TriangleSide int

const (
	NoSide TriangleSide = iota
	Opposite
	Adjacent
	Hypotenuse
)

func (s TriangleSide) String() string {
	switch s {
	case Opposite:
		return "opposite"
	case Adjacent:
		return "adjacent"
	case Hypotenuse:
		return "hypotenuse"
	}
	return "none"
}

// Ratio returns the numerator and denominator sides of f.
func (f TrigFunc) Ratio() (num, den TriangleSide) {
	switch f {
	case Sin:
		return Opposite, Hypotenuse
	case Cos:
		return Adjacent, Hypotenuse
	case Tan:
		return Opposite, Adjacent
	case Sec:
		return Hypotenuse, Adjacent
	case Csc:
		return Hypotenuse, Opposite
	case Cot:
		return Adjacent, Opposite
	}
	return NoSide, NoSide
}

// Needs reports whether evaluating f requires side s.
func (f TrigFunc) Needs(s TriangleSide) bool {
	num, den := f.Ratio()
	return s != NoSide && (s == num || s == den)
}
