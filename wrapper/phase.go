package wrapper

// Phase is a lifecycle phase of the wrapper state.
type Phase int

const (
	Uninitialized Phase = iota
	EnvironmentNegotiating
	Initialized
	GameLoaded
	Running
	GameUnloaded
	Deinitialized
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "Uninitialized"
	case EnvironmentNegotiating:
		return "EnvironmentNegotiating"
	case Initialized:
		return "Initialized"
	case GameLoaded:
		return "GameLoaded"
	case Running:
		return "Running"
	case GameUnloaded:
		return "GameUnloaded"
	case Deinitialized:
		return "Deinitialized"
	default:
		return "Unknown"
	}
}

// phaseSet is a bitmask of phases.
type phaseSet uint16

func phases(ps ...Phase) phaseSet {
	var s phaseSet
	for _, p := range ps {
		s |= 1 << p
	}
	return s
}

func (s phaseSet) has(p Phase) bool {
	return s&(1<<p) != 0
}

var (
	// anyLive is every phase in which the state exists.
	anyLive = phases(Uninitialized, EnvironmentNegotiating, Initialized, GameLoaded, Running, GameUnloaded)

	// preInit covers the phases before Init completes.
	preInit = phases(Uninitialized, EnvironmentNegotiating)

	// contentLoaded covers the phases with content loaded.
	contentLoaded = phases(GameLoaded, Running)

	// loadable covers the phases from which content can be loaded.
	loadable = phases(Initialized, GameUnloaded)

	// initialized covers the phases after a successful Init.
	initialized = phases(Initialized, GameLoaded, Running, GameUnloaded)
)
