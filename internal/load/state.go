package load

// State is a coarse band of the aggregate load.
type State string

const (
	StateCalm       State = "calm"
	StateSteady     State = "steady"
	StateStretched  State = "stretched"
	StateOverloaded State = "overloaded"
)

// StateOf maps an aggregate load to its band.
func StateOf(total float64) State {
	switch {
	case total < 100:
		return StateCalm
	case total < 200:
		return StateSteady
	case total < 300:
		return StateStretched
	default:
		return StateOverloaded
	}
}

// Message returns the one-line description of the band.
func (s State) Message() string {
	switch s {
	case StateCalm:
		return "Your mind has room to breathe."
	case StateSteady:
		return "A steady, manageable day."
	case StateStretched:
		return "You're carrying a lot. Pace yourself."
	case StateOverloaded:
		return "This is more than one mind should hold today."
	default:
		return ""
	}
}

// WeightClass describes the base load of a task before it is added.
type WeightClass string

const (
	WeightNone     WeightClass = ""
	WeightLight    WeightClass = "light"
	WeightModerate WeightClass = "moderate"
	WeightHeavy    WeightClass = "heavy"
)

// Weight classifies duration*effort for a task preview. Missing or
// non-positive input yields WeightNone.
func Weight(duration, effort int) WeightClass {
	if duration <= 0 || effort <= 0 {
		return WeightNone
	}
	w := duration * effort
	switch {
	case w < 60:
		return WeightLight
	case w < 150:
		return WeightModerate
	default:
		return WeightHeavy
	}
}

// Message returns the preview sentence for the weight class.
func (w WeightClass) Message() string {
	switch w {
	case WeightLight:
		return "This task is light to carry."
	case WeightModerate:
		return "This task feels moderate."
	case WeightHeavy:
		return "This task feels mentally heavy."
	default:
		return ""
	}
}
