package wrapper

import "github.com/user-none/eblitcore/abi"

// perfState holds the host's performance interface and the counters
// registered with it. The host keeps pointers to registered counters, so
// they stay pinned until deinit.
type perfState struct {
	cb       abi.PerfCallback
	queried  bool
	counters map[string]*abi.PerfCounter
	pins     abi.Pins
}

// acquire fetches the interface on first use.
func (p *perfState) acquire(e *environment) bool {
	if !p.queried {
		p.queried = true
		fetch[abi.PerfCallback](e, abi.EnvGetPerfInterface)
	}
	return p.cb.PerfRegister != 0
}

func (p *perfState) counter(bridge Bridge, name string) *abi.PerfCounter {
	if c, ok := p.counters[name]; ok {
		return c
	}
	if p.counters == nil {
		p.counters = make(map[string]*abi.PerfCounter)
	}
	c := &abi.PerfCounter{Ident: p.pins.CString(name)}
	p.pins.Pin(c)
	bridge.PerfRegister(p.cb.PerfRegister, c)
	p.counters[name] = c
	return c
}

func (p *perfState) start(e *environment, bridge Bridge, name string) {
	if !p.acquire(e) || p.cb.PerfStart == 0 {
		return
	}
	bridge.PerfStart(p.cb.PerfStart, p.counter(bridge, name))
}

func (p *perfState) stop(bridge Bridge, name string) {
	c, ok := p.counters[name]
	if !ok || p.cb.PerfStop == 0 {
		return
	}
	bridge.PerfStop(p.cb.PerfStop, c)
}

// release has the host log its counters and unpins them.
func (p *perfState) release(bridge Bridge) {
	if len(p.counters) > 0 && p.cb.PerfLog != 0 {
		bridge.PerfLog(p.cb.PerfLog)
	}
	p.pins.Unpin()
	p.counters = nil
	p.cb = abi.PerfCallback{}
	p.queried = false
}
