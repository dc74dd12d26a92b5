// Package analysis inspects recorded metric series.
//
// Sloshing and oscillating drops show up as periodic signals in series such
// as max_speed or interface_cells; [PowerSpectrum] and [DominantPeriod]
// recover the period in ticks:
//
//	period, ok := analysis.DominantPeriod(speeds, float64(batch))
package analysis
