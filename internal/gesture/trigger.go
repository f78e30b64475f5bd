package gesture

// EdgeTrigger debounces a boolean signal into one event per rising edge.
// The zero value is ready to use and starts low.
type EdgeTrigger struct {
	high bool
}

// Update feeds the next sample and reports whether it is a false-to-true
// transition.
func (t *EdgeTrigger) Update(v bool) bool {
	rising := v && !t.high
	t.high = v
	return rising
}

// High reports the last sampled value.
func (t *EdgeTrigger) High() bool {
	return t.high
}
