package radix

import (
	"math"
	"strconv"
)

// Stats holds temperatures as tenths of a degree.
type Stats struct {
	Sum   int64
	Count int64
	Min   int32
	Max   int32
}

func NewStats() Stats {
	return Stats{Min: math.MaxInt32, Max: math.MinInt32}
}

func (s *Stats) Add(temp int32) {
	s.Sum += int64(temp)
	s.Count++
	if temp < s.Min {
		s.Min = temp
	}
	if temp > s.Max {
		s.Max = temp
	}
}

func (s *Stats) Merge(o Stats) {
	if o.Count == 0 {
		return
	}
	s.Sum += o.Sum
	s.Count += o.Count
	s.Min = min(s.Min, o.Min)
	s.Max = max(s.Max, o.Max)
}

// Mean returns the mean in tenths, rounded half up.
func (s Stats) Mean() int64 {
	if s.Count == 0 {
		return 0
	}
	num, den := 2*s.Sum+s.Count, 2*s.Count
	q := num / den
	if num%den != 0 && num < 0 {
		q--
	}
	return q
}

// AppendTenths appends v/10 with exactly one decimal, the format
// measurements are read and reported in.
func AppendTenths(b []byte, v int64) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	b = strconv.AppendInt(b, v/10, 10)
	return append(b, '.', byte('0'+v%10))
}
