package lattice

// Q is the number of populations per cell.
const Q = 9

const (
	four9ths = 4.0 / 9.0
	one9th   = 1.0 / 9.0
	one36th  = 1.0 / 36.0
)

// Offsets are the integer lattice velocities e_d.
var Offsets = [Q][2]int{
	{0, 0},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Weights are the D2Q9 quadrature weights w_d.
var Weights = [Q]float64{
	four9ths,
	one9th, one36th, one9th, one36th,
	one9th, one36th, one9th, one36th,
}

// Direction returns e_d as a vector.
func Direction(d int) Vec2 {
	return Vec2{X: float64(Offsets[d][0]), Y: float64(Offsets[d][1])}
}

// Opposite returns the direction pointing the other way. Opposite(0) is 0.
func Opposite(d int) int {
	if d == 0 {
		return 0
	}
	return (d+3)%8 + 1
}

// Equilibrium writes the second-order Maxwell-Boltzmann equilibrium for
// (rho, u) into eq.
func Equilibrium(eq *[Q]float64, rho float64, u Vec2) {
	u2 := 1.5 * u.Dot(u)
	for d := 0; d < Q; d++ {
		eu := 3 * (float64(Offsets[d][0])*u.X + float64(Offsets[d][1])*u.Y)
		eq[d] = Weights[d] * rho * (1 + eu + 0.5*eu*eu - u2)
	}
}

// Moments returns the density and momentum of a population set.
func Moments(f []float64) (rho float64, j Vec2) {
	for d := 0; d < Q; d++ {
		v := f[d]
		rho += v
		j.X += float64(Offsets[d][0]) * v
		j.Y += float64(Offsets[d][1]) * v
	}
	return rho, j
}
