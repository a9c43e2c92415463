package mathquiz

import (
	"fmt"
	"math/rand"
)

// Problem is one question with an integer answer.
type Problem struct {
	Display     string
	Answer      int
	Explanation string
}

// Generate draws a problem for tier: 1 is arithmetic, 2 equations, powers
// and negative results, 3 logarithms, derivatives and sequences.
// Every answer is an integer.
func Generate(tier int, rng *rand.Rand) Problem {
	switch tier {
	case 1:
		return arithmetic(rng)
	case 2:
		return middle(rng)
	default:
		return advanced(rng)
	}
}

func arithmetic(rng *rand.Rand) Problem {
	switch rng.Intn(4) {
	case 0:
		a, b := rng.Intn(50)+1, rng.Intn(50)+1
		return binary(a, "+", b, a+b)
	case 1:
		a := rng.Intn(50) + 10
		b := rng.Intn(a) + 1
		return binary(a, "-", b, a-b)
	case 2:
		a, b := rng.Intn(19)+2, rng.Intn(9)+1
		return binary(a, "×", b, a*b)
	default:
		b := rng.Intn(9) + 2
		q := rng.Intn(10) + 1
		return binary(b*q, "÷", b, q)
	}
}

func binary(a int, op string, b, answer int) Problem {
	return Problem{
		Display:     fmt.Sprintf("%d %s %d = ?", a, op, b),
		Answer:      answer,
		Explanation: fmt.Sprintf("%d %s %d = %d", a, op, b, answer),
	}
}

func middle(rng *rand.Rand) Problem {
	switch rng.Intn(3) {
	case 0:
		x := rng.Intn(10) + 1
		a := rng.Intn(5) + 2
		b := rng.Intn(10) + 1
		c := a*x + b
		return Problem{
			Display:     fmt.Sprintf("%dx + %d = %d, x = ?", a, b, c),
			Answer:      x,
			Explanation: fmt.Sprintf("%dx = %d, so x = %d", a, c-b, x),
		}
	case 1:
		bases := []int{2, 3, 4, 5, 10}
		base := bases[rng.Intn(len(bases))]
		exp := rng.Intn(3) + 2
		if base == 2 {
			exp = rng.Intn(5) + 2
		}
		v := pow(base, exp)
		return Problem{
			Display:     fmt.Sprintf("%d^%d = ?", base, exp),
			Answer:      v,
			Explanation: fmt.Sprintf("%d multiplied by itself %d times is %d", base, exp, v),
		}
	default:
		a := rng.Intn(20) + 1
		b := rng.Intn(30) + 20
		return Problem{
			Display:     fmt.Sprintf("%d - %d = ?", a, b),
			Answer:      a - b,
			Explanation: fmt.Sprintf("taking the larger number away goes negative: %d", a-b),
		}
	}
}

func advanced(rng *rand.Rand) Problem {
	switch rng.Intn(3) {
	case 0:
		base := rng.Intn(3) + 2
		x := rng.Intn(3) + 1
		v := pow(base, x)
		return Problem{
			Display:     fmt.Sprintf("log%d(%d) = ?", base, v),
			Answer:      x,
			Explanation: fmt.Sprintf("%d^%d = %d, so the answer is %d", base, x, v, x),
		}
	case 1:
		n := rng.Intn(3) + 2
		x := rng.Intn(5) + 1
		d := n * pow(x, n-1)
		return Problem{
			Display:     fmt.Sprintf("f(x)=x^%d, f'(%d)=?", n, x),
			Answer:      d,
			Explanation: fmt.Sprintf("f'(x)=%dx^%d, so %d×%d = %d", n, n-1, n, pow(x, n-1), d),
		}
	default:
		a1 := rng.Intn(5) + 1
		step := rng.Intn(5) + 1
		n := rng.Intn(4) + 3
		v := a1 + (n-1)*step
		return Problem{
			Display:     fmt.Sprintf("a1=%d, d=%d, a%d=?", a1, step, n),
			Answer:      v,
			Explanation: fmt.Sprintf("%d + (%d-1)×%d = %d", a1, n, step, v),
		}
	}
}

func pow(b, e int) int {
	v := 1
	for ; e > 0; e-- {
		v *= b
	}
	return v
}
