// rides/ride.go

package rides

import "time"

// Sample is one recorded data point of a ride.
type Sample struct {
	Secs    float64
	Km      float64
	Watts   float64
	Cadence float64
	HR      float64
	Kph     float64
	Alt     float64
}

// Ride is the in-memory payload of a record.
type Ride struct {
	StartTime  time.Time
	DeviceType string
	Notes      string
	Samples    []Sample
}

// Duration returns the time of the last sample.
func (r *Ride) Duration() time.Duration {
	if len(r.Samples) == 0 {
		return 0
	}
	return time.Duration(r.Samples[len(r.Samples)-1].Secs * float64(time.Second))
}

// Distance returns the cumulative distance of the last sample in kilometres.
func (r *Ride) Distance() float64 {
	if len(r.Samples) == 0 {
		return 0
	}
	return r.Samples[len(r.Samples)-1].Km
}

func (r *Ride) clone() *Ride {
	c := *r
	if r.Samples != nil {
		c.Samples = make([]Sample, len(r.Samples))
		copy(c.Samples, r.Samples)
	}
	return &c
}
