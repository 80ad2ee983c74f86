// Package palette holds the color ramps analyzers hand out as rendering hints.
package palette

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	Heat       = "heat"
	Cool       = "cool"
	Traffic    = "traffic"
	Rainbow    = "rainbow"
	Monochrome = "monochrome"
	Strength   = "strength"
)

// Neutral is used for nodes outside any ranked tier.
const Neutral = "#cccccc"

var tierRamps = map[string][]string{
	Heat:       {"#d73027", "#f46d43", "#fdae61", "#fee08b", "#e6f598", "#abdda4", "#66c2a5", "#3288bd"},
	Cool:       {"#2166ac", "#4393c3", "#92c5de", "#d1e5f0", "#f7f7f7", "#fddbc7", "#f4a582", "#d6604d"},
	Traffic:    {"#d73027", "#fc8d59", "#fee08b", "#d9ef8b", "#91bfdb", "#4575b4", "#313695", "#2166ac"},
	Monochrome: {"#08519c", "#2171b5", "#4292c6", "#6baed6", "#9ecae1", "#c6dbef", "#deebf7", "#f7fbff"},
}

var edgeRamps = map[string][]string{
	Strength:   {"#2166ac", "#4393c3", "#92c5de", "#f7f7f7", "#fddbc7", "#f4a582", "#d6604d", "#b2182b"},
	Heat:       {"#313695", "#4575b4", "#74add1", "#abd9e9", "#fee090", "#fdae61", "#f46d43", "#d73027"},
	Traffic:    {"#2166ac", "#5aae61", "#a6d96a", "#ffffbf", "#fdae61", "#f46d43", "#d73027", "#a50026"},
	Monochrome: {"#f7f7f7", "#d9d9d9", "#bdbdbd", "#969696", "#737373", "#525252", "#252525", "#000000"},
	Rainbow:    {"#9e0142", "#d53e4f", "#f46d43", "#fdae61", "#fee08b", "#e6f598", "#abdda4", "#66c2a5"},
}

var communityColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FECA57",
	"#FF9FF3", "#54A0FF", "#5F27CD", "#00D2D3", "#FF9F43",
	"#C44569", "#F8B500", "#6C5CE7", "#A29BFE", "#FD79A8",
}

// Tiers returns n colors for ranked tiers, most important first. Fixed ramps
// repeat when n exceeds their length; rainbow spreads n hues evenly; unknown
// schemes use heat.
func Tiers(n int, scheme string) []string {
	if n <= 0 {
		return []string{}
	}
	if scheme == Rainbow {
		return spectrum(n)
	}
	ramp, ok := tierRamps[scheme]
	if !ok {
		ramp = tierRamps[Heat]
	}
	return cycle(ramp, n)
}

// EdgeRamp is the 8-step low→high ramp used to color edges by strength.
// Unknown schemes use the rainbow ramp.
func EdgeRamp(scheme string) []string {
	if ramp, ok := edgeRamps[scheme]; ok {
		return ramp
	}
	return edgeRamps[Rainbow]
}

// Community picks the color of the i-th community, cycling the palette.
func Community(i int) string {
	return communityColors[i%len(communityColors)]
}

func cycle(ramp []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = ramp[i%len(ramp)]
	}
	return out
}

// spectrum walks the full hue circle at saturation 0.8 and value 0.9. Channels
// are truncated, not rounded, to 8 bits.
func spectrum(n int) []string {
	out := make([]string, n)
	for i := range out {
		hue := float64(i) / float64(max(1, n-1))
		c := colorful.Hsv(math.Mod(hue*360, 360), 0.8, 0.9)
		out[i] = fmt.Sprintf("#%02x%02x%02x", int(c.R*255), int(c.G*255), int(c.B*255))
	}
	return out
}
