package presenter

import (
	"fmt"
	"math"
)

// Gauge geometry in SVG user units. The dial is the upper half of a circle.
const (
	gaugeCX     = 150.0
	gaugeCY     = 175.0
	gaugeRadius = 120.0
	gaugeWidth  = 24.0
)

const (
	gaugeBarColor = "blue"
	gaugeBgColor  = "lightgray"
)

// GaugeView is the precomputed data the gauge template draws.
type GaugeView struct {
	Title     string
	Value     int
	Max       int
	Track     string // full 0..Max arc
	Bar       string // 0..Value arc, empty for a zero value
	BarColor  string
	BackColor string
	Ticks     []GaugeTick
}

// GaugeTick is one labelled axis mark.
type GaugeTick struct {
	Label string
	X, Y  float64
}

// NewGauge lays out a semicircular gauge for value on the axis [0, maxValue].
// Values outside the axis are pinned to its ends.
func NewGauge(title string, value, maxValue int) GaugeView {
	if maxValue <= 0 {
		maxValue = 1
	}
	value = min(max(value, 0), maxValue)

	g := GaugeView{
		Title:     title,
		Value:     value,
		Max:       maxValue,
		Track:     arcPath(1),
		BarColor:  gaugeBarColor,
		BackColor: gaugeBgColor,
	}
	if value > 0 {
		g.Bar = arcPath(float64(value) / float64(maxValue))
	}

	labelRadius := gaugeRadius + gaugeWidth
	for i := 0; i <= maxValue; i++ {
		x, y := polar(float64(i)/float64(maxValue), labelRadius)
		g.Ticks = append(g.Ticks, GaugeTick{Label: fmt.Sprint(i), X: round1(x), Y: round1(y)})
	}

	return g
}

// arcPath draws the arc from the left end of the dial to fraction f of the way round.
func arcPath(f float64) string {
	sx, sy := polar(0, gaugeRadius)
	ex, ey := polar(f, gaugeRadius)
	return fmt.Sprintf("M %.1f %.1f A %.0f %.0f 0 0 1 %.1f %.1f", sx, sy, gaugeRadius, gaugeRadius, ex, ey)
}

// polar maps fraction f of the dial to a point at radius r. f=0 is the left end, f=1 the right.
func polar(f, r float64) (float64, float64) {
	a := math.Pi * (1 - f)
	return gaugeCX + r*math.Cos(a), gaugeCY - r*math.Sin(a)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
