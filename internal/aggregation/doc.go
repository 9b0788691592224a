// Package aggregation derives display values (upcoming classes, CGPA, attendance
// percentage, weighted marks, course partitions) from fetched document snapshots.
// Every function is pure: the evaluation instant, location and student identity
// are passed in explicitly and nothing is cached.
package aggregation

import "math"

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
