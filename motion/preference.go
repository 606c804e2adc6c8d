package motion

// Preference is a settable MediaQuery. The showcase binds it to a key and a
// CLI flag; tests flip it directly.
type Preference struct {
	matches   bool
	nextID    uint64
	listeners map[uint64]func(bool)
}

// NewPreference creates a preference with an initial value.
func NewPreference(matches bool) *Preference {
	return &Preference{
		matches:   matches,
		listeners: make(map[uint64]func(bool)),
	}
}

// Matches implements MediaQuery.
func (p *Preference) Matches() bool {
	return p.matches
}

// OnChange implements MediaQuery.
func (p *Preference) OnChange(fn func(bool)) (remove func()) {
	p.nextID++
	id := p.nextID
	p.listeners[id] = fn
	return func() { delete(p.listeners, id) }
}

// Set updates the value and notifies listeners when it changes.
func (p *Preference) Set(matches bool) {
	if p.matches == matches {
		return
	}
	p.matches = matches
	fns := make([]func(bool), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(matches)
	}
}

// Toggle flips the value.
func (p *Preference) Toggle() {
	p.Set(!p.matches)
}

// Listeners returns the number of subscribers.
func (p *Preference) Listeners() int {
	return len(p.listeners)
}
