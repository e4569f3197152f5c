package problem

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/mathproblem/pkg/errors"
)

var columnNames = [MaxDigits]string{
	"ones", "tens", "hundreds", "thousands", "ten-thousands",
	"hundred-thousands", "millions", "ten-millions", "hundred-millions",
}

// Addition returns "a + b" where both operands have the same number of
// digits, drawn uniformly from [minDigits, maxDigits]. Level 1 operands never
// carry. Level 2 operands may.
func (g *Generator) Addition(level, minDigits, maxDigits int) (Problem, error) {
	if err := validateLevel(KindAddition, level); err != nil {
		return Problem{}, err
	}
	if minDigits < 1 || maxDigits < 1 {
		return Problem{}, errors.New(errors.ErrCodeInvalidInput, "min and max digits must both be >= 1")
	}
	if maxDigits < minDigits {
		return Problem{}, errors.New(errors.ErrCodeInvalidInput, "max digits (%d) must be >= min digits (%d)", maxDigits, minDigits)
	}
	if maxDigits > MaxDigits {
		return Problem{}, errors.New(errors.ErrCodeInvalidInput, "max digits must be <= %d, got %d", MaxDigits, maxDigits)
	}

	size := g.between(minDigits, maxDigits)
	var a, b []int
	if level == 1 {
		a, b = g.digitsNoCarry(size)
	} else {
		a, b = g.digitsWithCarry(size)
	}

	x, y := fromDigits(a), fromDigits(b)
	return Problem{
		Kind:   KindAddition,
		Level:  level,
		Prompt: fmt.Sprintf("%d + %d", x, y),
		Steps:  additionSteps(a, b),
		Answer: strconv.Itoa(x + y),
	}, nil
}

// digitsNoCarry returns little-endian digit pairs whose column sums never
// exceed 9. The leading digits are non-zero.
func (g *Generator) digitsNoCarry(size int) (a, b []int) {
	a, b = make([]int, size), make([]int, size)
	for i := range size {
		if i == size-1 {
			a[i] = g.between(1, 8)
			b[i] = g.between(1, 9-a[i])
		} else {
			a[i] = g.between(0, 9)
			b[i] = g.between(0, 9-a[i])
		}
	}
	return a, b
}

// digitsWithCarry returns little-endian digit pairs with non-zero leading
// digits and no column constraint.
func (g *Generator) digitsWithCarry(size int) (a, b []int) {
	a, b = make([]int, size), make([]int, size)
	for i := range size {
		lo := 0
		if i == size-1 {
			lo = 1
		}
		a[i] = g.between(lo, 9)
		b[i] = g.between(lo, 9)
	}
	return a, b
}

func fromDigits(d []int) int {
	n, place := 0, 1
	for _, v := range d {
		n += v * place
		place *= 10
	}
	return n
}

// additionSteps walks the columns right to left, one step per column.
func additionSteps(a, b []int) []string {
	steps := make([]string, 0, len(a)+2)
	carry := 0
	for i := range a {
		sum := a[i] + b[i] + carry
		var s string
		if carry > 0 {
			s = fmt.Sprintf("Add the %s column: %d + %d + %d (carried) = %d.", columnNames[i], a[i], b[i], carry, sum)
		} else {
			s = fmt.Sprintf("Add the %s column: %d + %d = %d.", columnNames[i], a[i], b[i], sum)
		}
		carry = sum / 10
		if carry > 0 {
			s += fmt.Sprintf(" Write %d and carry %d.", sum%10, carry)
		}
		steps = append(steps, s)
	}
	if carry > 0 {
		steps = append(steps, fmt.Sprintf("Write the carried %d in front.", carry))
	}
	return append(steps, fmt.Sprintf("The sum is %d.", fromDigits(a)+fromDigits(b)))
}
