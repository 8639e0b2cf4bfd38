package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/labcalc/internal/physnum"
)

const (
	DefaultPlotWidth  = 60
	DefaultPlotHeight = 10
)

// PlotSeries draws the readings with their upper and lower bounds. It returns
// "" for an empty series.
func PlotSeries(name string, nums []physnum.Number, width, height int) string {
	if len(nums) == 0 {
		return ""
	}
	if width <= 0 {
		width = DefaultPlotWidth
	}
	if height <= 0 {
		height = DefaultPlotHeight
	}

	values := make([]float64, len(nums))
	upper := make([]float64, len(nums))
	lower := make([]float64, len(nums))
	places := int32(2)
	for i, n := range nums {
		values[i] = n.Value().Float64()
		upper[i] = n.Upper().Float64()
		lower[i] = n.Lower().Float64()
		if s := n.Upper().Scale(); s > places {
			places = s
		}
	}
	if places > 8 {
		places = 8
	}

	caption := name
	if u := nums[0].Unit(); !u.IsZero() {
		caption = fmt.Sprintf("%s (%s)", name, u.Symbol)
	}

	return asciigraph.PlotMany(
		[][]float64{values, upper, lower},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(uint(places)),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Default, asciigraph.Green, asciigraph.Red),
		asciigraph.SeriesLegends("value", "upper", "lower"),
	)
}
