// Package detector reads sticker colors out of camera frames: per-pixel
// color classification and 3x3 grid sampling of a cube face.
package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/cubescan/internal/cube"
)

// BGR is a pixel in OpenCV channel order.
type BGR struct {
	B, G, R uint8
}

// HSV is a pixel in OpenCV's 8-bit HSV space: H in [0,179], S and V in
// [0,255].
type HSV struct {
	H, S, V uint8
}

// ToHSV converts a single pixel with OpenCV's BGR→HSV conversion.
func ToHSV(px BGR) HSV {
	src := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(px.B), float64(px.G), float64(px.R), 0),
		1, 1, gocv.MatTypeCV8UC3,
	)
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.CvtColor(src, &dst, gocv.ColorBGRToHSV)
	v := dst.GetVecbAt(0, 0)
	return HSV{H: v[0], S: v[1], V: v[2]}
}

// Range is an inclusive integer interval.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Thresholds holds every numeric bound used by the classification rules.
// The HSV bands are tuned for indoor lighting and are the first thing to
// recalibrate when a camera misreads stickers.
type Thresholds struct {
	WhiteMinValue int `yaml:"white_min_value"`
	WhiteMaxSat   int `yaml:"white_max_sat"`

	YellowHue      Range `yaml:"yellow_hue"`
	YellowMinSat   int   `yaml:"yellow_min_sat"`
	YellowMinValue int   `yaml:"yellow_min_value"`

	OrangeHue    Range `yaml:"orange_hue"`
	OrangeMinSat int   `yaml:"orange_min_sat"`

	// Red wraps around the hue circle: H <= RedLowMaxHue or H >= RedHighMinHue.
	RedLowMaxHue  int `yaml:"red_low_max_hue"`
	RedHighMinHue int `yaml:"red_high_min_hue"`
	RedMinSat     int `yaml:"red_min_sat"`

	GreenHue    Range `yaml:"green_hue"`
	GreenMinSat int   `yaml:"green_min_sat"`

	BlueHue    Range `yaml:"blue_hue"`
	BlueMinSat int   `yaml:"blue_min_sat"`

	// DominanceMargin is how far one raw channel must exceed both others
	// before the fallback rules call it.
	DominanceMargin int `yaml:"dominance_margin"`
	// FallbackWhiteMinValue is the brightness above which an otherwise
	// unclassified pixel is called white.
	FallbackWhiteMinValue int `yaml:"fallback_white_min_value"`
}

// DefaultThresholds returns the stock calibration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WhiteMinValue:         160,
		WhiteMaxSat:           60,
		YellowHue:             Range{Min: 22, Max: 38},
		YellowMinSat:          80,
		YellowMinValue:        100,
		OrangeHue:             Range{Min: 5, Max: 30},
		OrangeMinSat:          80,
		RedLowMaxHue:          8,
		RedHighMinHue:         170,
		RedMinSat:             90,
		GreenHue:              Range{Min: 45, Max: 75},
		GreenMinSat:           70,
		BlueHue:               Range{Min: 100, Max: 125},
		BlueMinSat:            70,
		DominanceMargin:       30,
		FallbackWhiteMinValue: 150,
	}
}

// Rule is one step of the classification cascade.
type Rule struct {
	Name  string
	Label cube.Color
	Match func(px BGR, hsv HSV) bool
}

// Rules builds the ordered cascade for th. Order matters: the orange band
// overlaps both yellow and red, so yellow and orange are tested before red.
// The HSV rules come first; the raw-channel rules only see pixels the HSV
// bands could not place.
func Rules(th Thresholds) []Rule {
	margin := th.DominanceMargin

	return []Rule{
		{
			Name:  "white",
			Label: cube.White,
			Match: func(_ BGR, c HSV) bool {
				return int(c.V) > th.WhiteMinValue && int(c.S) < th.WhiteMaxSat
			},
		},
		{
			Name:  "yellow",
			Label: cube.Yellow,
			Match: func(_ BGR, c HSV) bool {
				return th.YellowHue.Contains(int(c.H)) && int(c.S) > th.YellowMinSat && int(c.V) > th.YellowMinValue
			},
		},
		{
			Name:  "orange",
			Label: cube.Orange,
			Match: func(_ BGR, c HSV) bool {
				return th.OrangeHue.Contains(int(c.H)) && int(c.S) > th.OrangeMinSat
			},
		},
		{
			Name:  "red",
			Label: cube.Red,
			Match: func(_ BGR, c HSV) bool {
				h := int(c.H)
				return (h <= th.RedLowMaxHue || h >= th.RedHighMinHue) && int(c.S) > th.RedMinSat
			},
		},
		{
			Name:  "green",
			Label: cube.Green,
			Match: func(_ BGR, c HSV) bool {
				return th.GreenHue.Contains(int(c.H)) && int(c.S) > th.GreenMinSat
			},
		},
		{
			Name:  "blue",
			Label: cube.Blue,
			Match: func(_ BGR, c HSV) bool {
				return th.BlueHue.Contains(int(c.H)) && int(c.S) > th.BlueMinSat
			},
		},
		{
			Name:  "red-dominant",
			Label: cube.Red,
			Match: func(p BGR, _ HSV) bool {
				return dominates(p.R, p.G, p.B, margin)
			},
		},
		{
			Name:  "green-dominant",
			Label: cube.Green,
			Match: func(p BGR, _ HSV) bool {
				return dominates(p.G, p.R, p.B, margin)
			},
		},
		{
			Name:  "blue-dominant",
			Label: cube.Blue,
			Match: func(p BGR, _ HSV) bool {
				return dominates(p.B, p.R, p.G, margin)
			},
		},
		{
			Name:  "bright",
			Label: cube.White,
			Match: func(_ BGR, c HSV) bool {
				return int(c.V) > th.FallbackWhiteMinValue
			},
		},
	}
}

func dominates(ch, a, b uint8, margin int) bool {
	return int(ch) > int(a)+margin && int(ch) > int(b)+margin
}

// Classifier maps pixels to scan-palette colors. It always returns a
// color: pixels no rule matches get the default label.
type Classifier struct {
	rules    []Rule
	fallback cube.Color
}

// NewClassifier builds a classifier from th with yellow as the default.
func NewClassifier(th Thresholds) *Classifier {
	return &Classifier{
		rules:    Rules(th),
		fallback: cube.Yellow,
	}
}

// Default returns the label used when no rule matches.
func (c *Classifier) Default() cube.Color {
	return c.fallback
}

// Classify converts px to HSV and runs the cascade.
func (c *Classifier) Classify(px BGR) cube.Color {
	return c.ClassifyHSV(px, ToHSV(px))
}

// ClassifyHSV runs the cascade on a pixel whose HSV form is already known.
func (c *Classifier) ClassifyHSV(px BGR, hsv HSV) cube.Color {
	label, _ := c.Explain(px, hsv)
	return label
}

// Explain is ClassifyHSV that also names the rule that decided, or
// "default" when none matched.
func (c *Classifier) Explain(px BGR, hsv HSV) (cube.Color, string) {
	for _, r := range c.rules {
		if r.Match(px, hsv) {
			return r.Label, r.Name
		}
	}
	return c.fallback, "default"
}
