// Package segment reconciles community-reported sponsorship time ranges.
package segment

import "math"

// DefaultTolerance is the start-time gap, in seconds, below which two
// reported segments are treated as the same sponsorship.
const DefaultTolerance = 2.0

// Interval is a time range on a single video's timeline, in seconds.
type Interval struct {
	Start float64 `json:"start"`
	Stop  float64 `json:"stop"`
}

// Duration returns the length of the interval in seconds
func (i Interval) Duration() float64 {
	return i.Stop - i.Start
}

// Reconcile collapses duplicate segment reports into one interval per
// sponsorship.
//
// The first adjacent pair (in current order) whose start times differ by
// strictly less than tolerance is merged: the earlier element keeps its start
// and takes the larger of the two stops, the later one is removed, and the
// scan restarts from the beginning. This repeats until a full pass merges
// nothing. Non-adjacent near-duplicates are only merged once earlier merges
// make them adjacent.
//
// The input slice is never modified.
func Reconcile(intervals []Interval, tolerance float64) []Interval {
	out := make([]Interval, len(intervals))
	copy(out, intervals)

	for {
		i := firstMergeable(out, tolerance)
		if i < 0 {
			return out
		}
		out[i] = Interval{
			Start: out[i].Start,
			Stop:  math.Max(out[i].Stop, out[i+1].Stop),
		}
		out = append(out[:i+1], out[i+2:]...)
	}
}

// firstMergeable returns the index of the first adjacent pair within
// tolerance, or -1.
func firstMergeable(intervals []Interval, tolerance float64) int {
	for i := 0; i+1 < len(intervals); i++ {
		if math.Abs(intervals[i].Start-intervals[i+1].Start) < tolerance {
			return i
		}
	}
	return -1
}
