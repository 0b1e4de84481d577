package main

// State is a pose in SE(2): planar position plus heading.
type State struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Yaw float64 `json:"yaw"`
}

// Control is a unicycle input: forward speed and angular rate.
type Control struct {
	V     float64 `json:"v"`
	Omega float64 `json:"omega"`
}

// Interval is a closed [Low, High] range for one dimension.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Valid reports whether the interval has positive extent.
func (iv Interval) Valid() bool {
	return iv.Low < iv.High
}

// Contains reports whether v lies inside the interval.
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Low && v <= iv.High
}

// Clamp snaps v to the nearest interval endpoint if it is outside.
func (iv Interval) Clamp(v float64) float64 {
	if v < iv.Low {
		return iv.Low
	}
	if v > iv.High {
		return iv.High
	}
	return v
}

// Waypoint is one segment of a solution path: applying Control for
// Duration at the previous waypoint's state produced State. The first
// waypoint is the start state with a zero control.
type Waypoint struct {
	State    State   `json:"state"`
	Control  Control `json:"control"`
	Duration float64 `json:"duration"`
}

// Status is the planner lifecycle position.
type Status int

const (
	Initialized Status = iota
	Running
	Solved
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Solved:
		return "solved"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}
