package inspect

import "github.com/joshuapare/allockit/alloc"

// Source is anything that can report its capacity and expose the memory it
// has handed out. Every region type satisfies it.
type Source interface {
	alloc.CapacityReporter
	Live() []byte
}

// Summary is a point-in-time view of a region's capacity.
type Summary struct {
	Capacity    int     `json:"capacity"`
	Used        int     `json:"used"`
	Free        int     `json:"free"`
	Utilization float64 `json:"utilization"` // Used/Capacity, 0 for an empty region
}

// Summarize reads the capacity counters of r.
func Summarize(r alloc.CapacityReporter) Summary {
	s := Summary{
		Capacity: r.Capacity(),
		Free:     r.CapacityLeft(),
	}
	s.Used = s.Capacity - s.Free
	if s.Capacity > 0 {
		s.Utilization = float64(s.Used) / float64(s.Capacity)
	}
	return s
}
