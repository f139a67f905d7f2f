package chart

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// LinearScale maps Domain linearly onto Range. Range may be inverted.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// Map returns the pixel position of v. A zero-width domain maps to the middle of the range.
func (s LinearScale) Map(v float64) float64 {
	d := s.Domain[1] - s.Domain[0]
	if d == 0 {
		return (s.Range[0] + s.Range[1]) / 2
	}
	return s.Range[0] + (v-s.Domain[0])/d*(s.Range[1]-s.Range[0])
}

// Ticks returns "nice" tick values (1, 2 or 5 times a power of ten) inside the domain.
// count is a hint, the result may hold a few more or fewer values.
func (s LinearScale) Ticks(count int) []float64 {
	return niceTicks(s.Domain[0], s.Domain[1], count)
}

// TickFormat returns a formatter with just enough decimals for the tick step
func (s LinearScale) TickFormat(count int) func(float64) string {
	step := math.Abs(tickStep(s.Domain[0], s.Domain[1], count))
	prec := 0
	if step > 0 && step < 1 {
		prec = int(math.Max(0, -math.Floor(math.Log10(step))))
		// 0.25 style steps need one more digit
		if math.Abs(step*math.Pow(10, float64(prec))-math.Round(step*math.Pow(10, float64(prec)))) > 1e-9 {
			prec++
		}
	}
	return func(v float64) string {
		return groupThousands(strconv.FormatFloat(v, 'f', prec, 64))
	}
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns a positive step, or a negative inverse step for sub-unit steps
// so that tick values can be computed without accumulating float error.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func tickStep(start, stop float64, count int) float64 {
	if count <= 0 || start == stop {
		return 0
	}
	lo, hi := math.Min(start, stop), math.Max(start, stop)
	inc := tickIncrement(lo, hi, count)
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}

func niceTicks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	inc := tickIncrement(start, stop, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}

	var ticks []float64
	if inc > 0 {
		r0 := math.Ceil(start / inc)
		r1 := math.Floor(stop / inc)
		for i := r0; i <= r1; i++ {
			ticks = append(ticks, i*inc)
		}
	} else {
		inc = -inc
		r0 := math.Ceil(start * inc)
		r1 := math.Floor(stop * inc)
		for i := r0; i <= r1; i++ {
			ticks = append(ticks, i/inc)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}

// TimeScale maps a time domain linearly onto Range
type TimeScale struct {
	Domain [2]time.Time
	Range  [2]float64
}

func (s TimeScale) Map(t time.Time) float64 {
	d := s.Domain[1].Sub(s.Domain[0])
	if d == 0 {
		return (s.Range[0] + s.Range[1]) / 2
	}
	frac := float64(t.Sub(s.Domain[0])) / float64(d)
	return s.Range[0] + frac*(s.Range[1]-s.Range[0])
}

// Ticks returns exactly count ticks spread evenly from the first to the last domain value
func (s TimeScale) Ticks(count int) []time.Time {
	if count <= 0 {
		return nil
	}
	ticks := make([]time.Time, count)
	if count == 1 {
		ticks[0] = s.Domain[0]
		return ticks
	}
	span := s.Domain[1].Sub(s.Domain[0])
	for i := 0; i < count; i++ {
		ticks[i] = s.Domain[0].Add(time.Duration(float64(span) * float64(i) / float64(count-1)))
	}
	return ticks
}

// TickLayout picks a time layout for tick labels based on the domain span
func (s TimeScale) TickLayout() string {
	span := s.Domain[1].Sub(s.Domain[0])
	if span < 0 {
		span = -span
	}
	switch {
	case span == 0:
		return "2006-01-02"
	case span <= 2*time.Minute:
		return "15:04:05"
	case span <= 2*24*time.Hour:
		return "15:04"
	case span <= 400*24*time.Hour:
		return "Jan 02"
	default:
		return "2006-01"
	}
}
