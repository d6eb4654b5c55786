// Package curve holds the temperature/duty mapping of the controller.
package curve

import (
	"sort"
	"strconv"
	"strings"
)

const (
	// MaxPoints is the maximum number of points kept from a curve string,
	// further valid tokens are ignored.
	MaxPoints = 20

	// MinPoints is the minimum number of points a usable curve must have.
	MinPoints = 2
)

// Point is a single (temperature, duty) couple of the curve.
type Point struct {
	Temp int `yaml:"temp" json:"temp"`
	Duty int `yaml:"duty" json:"duty"`
}

// Curve is an immutable list of points sorted by ascending temperature.
type Curve struct {
	points []Point
}

// New returns a curve made of a sorted copy of points.
func New(points ...Point) Curve {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Temp < sorted[j].Temp
	})
	return Curve{points: sorted}
}

// Parse reads a curve from a `temp:duty,temp:duty...` string,
// eg.: `35:0,45:36,60:100`.
// Malformed tokens are skipped and no more than MaxPoints points are kept.
// The returned curve is sorted but not validated.
func Parse(data string) Curve {
	points := make([]Point, 0, MaxPoints)
	for _, token := range strings.Split(data, ",") {
		if len(points) == MaxPoints {
			break
		}
		p, ok := parsePoint(token)
		if !ok {
			continue
		}
		points = append(points, p)
	}
	return New(points...)
}

func parsePoint(token string) (p Point, ok bool) {
	temp, duty, found := strings.Cut(strings.TrimSpace(token), ":")
	if !found {
		return
	}
	var err error
	if p.Temp, err = strconv.Atoi(strings.TrimSpace(temp)); err != nil {
		return
	}
	if p.Duty, err = strconv.Atoi(strings.TrimSpace(duty)); err != nil {
		return
	}
	return p, true
}

// Validate reports whether the curve can drive the controller:
// it needs at least MinPoints points with strictly ascending temperatures.
func (c Curve) Validate() error {
	if len(c.points) < MinPoints {
		return &ConfigError{Kind: ErrTooFewPoints, Points: len(c.points)}
	}
	for i := 1; i < len(c.points); i++ {
		if c.points[i].Temp == c.points[i-1].Temp {
			return &ConfigError{
				Kind:        ErrDuplicateTemperature,
				Points:      len(c.points),
				Temperature: c.points[i].Temp,
			}
		}
	}
	return nil
}

// Len returns the number of points.
func (c Curve) Len() int {
	return len(c.points)
}

// Points returns a copy of the curve points.
func (c Curve) Points() []Point {
	points := make([]Point, len(c.points))
	copy(points, c.points)
	return points
}

// Activation returns where the curve starts spinning the fan:
// the temperature of the last stopped point before the first point with a positive duty,
// and the duty of that first point.
func (c Curve) Activation() (Point, bool) {
	for i, p := range c.points {
		if p.Duty <= 0 {
			continue
		}
		if i > 0 {
			p.Temp = c.points[i-1].Temp
		}
		return p, true
	}
	return Point{}, false
}

// Target returns the duty for temp, clamped to the curve endpoints
// and linearly interpolated between them.
// Integer division truncates toward zero.
func (c Curve) Target(temp int) int {
	n := len(c.points)
	if n == 0 {
		return 0
	}

	first, last := c.points[0], c.points[n-1]
	if temp <= first.Temp {
		return first.Duty
	}
	if temp >= last.Temp {
		return last.Duty
	}

	for i := 0; i < n-1; i++ {
		lo, hi := c.points[i], c.points[i+1]
		if temp >= lo.Temp && temp < hi.Temp {
			return lo.Duty + (temp-lo.Temp)*(hi.Duty-lo.Duty)/(hi.Temp-lo.Temp)
		}
	}
	return 0
}

// String returns the curve in the same format accepted by Parse.
func (c Curve) String() string {
	tokens := make([]string, len(c.points))
	for i, p := range c.points {
		tokens[i] = strconv.Itoa(p.Temp) + ":" + strconv.Itoa(p.Duty)
	}
	return strings.Join(tokens, ",")
}
