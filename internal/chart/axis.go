package chart

import "time"

const (
	tickSize    = 6.0
	tickPadding = 3.0
	axisFont    = 10
)

// bottomAxis draws a time axis along the bottom edge of the plotting area
func bottomAxis(parent *Element, scale TimeScale, ticks []time.Time, innerHeight float64) *Element {
	g := axisGroup(parent, "axis axis-x").
		Set("transform", translate(0, innerHeight)).
		Set("text-anchor", "middle")

	r0, r1 := scale.Range[0], scale.Range[1]
	g.Append("path").
		Set("class", "domain").
		Set("stroke", "currentColor").
		Set("d", "M"+formatNumber(r0)+","+formatNumber(tickSize)+
			"V0H"+formatNumber(r1)+"V"+formatNumber(tickSize))

	layout := scale.TickLayout()
	for _, t := range ticks {
		tick := g.Append("g").
			Set("class", "tick").
			Set("transform", translate(scale.Map(t), 0))
		tick.Append("line").
			Set("stroke", "currentColor").
			Set("y2", tickSize)
		tick.Append("text").
			Set("fill", "currentColor").
			Set("y", tickSize+tickPadding).
			Set("dy", "0.71em").
			SetText(t.Format(layout))
	}
	return g
}

// leftAxis draws a linear axis along the left edge of the plotting area
func leftAxis(parent *Element, scale LinearScale, ticks []float64, format func(float64) string) *Element {
	g := axisGroup(parent, "axis axis-y").
		Set("text-anchor", "end")

	r0, r1 := scale.Range[0], scale.Range[1]
	g.Append("path").
		Set("class", "domain").
		Set("stroke", "currentColor").
		Set("d", "M"+formatNumber(-tickSize)+","+formatNumber(r0)+
			"H0V"+formatNumber(r1)+"H"+formatNumber(-tickSize))

	for _, v := range ticks {
		tick := g.Append("g").
			Set("class", "tick").
			Set("transform", translate(0, scale.Map(v)))
		tick.Append("line").
			Set("stroke", "currentColor").
			Set("x2", -tickSize)
		tick.Append("text").
			Set("fill", "currentColor").
			Set("x", -(tickSize + tickPadding)).
			Set("dy", "0.32em").
			SetText(format(v))
	}
	return g
}

func axisGroup(parent *Element, class string) *Element {
	return parent.Append("g").
		Set("class", class).
		Set("fill", "none").
		Set("font-size", axisFont).
		Set("font-family", "sans-serif")
}

// AxisTicks returns the tick groups of an axis element
func AxisTicks(axis *Element) []*Element {
	return axis.ChildrenWithClass("tick")
}
