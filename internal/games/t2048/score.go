package t2048

// Score tracks the running and best score. Best never drops below Current.
type Score struct {
	Current int
	Best    int
}

// Apply adds delta points from merges.
func (s *Score) Apply(delta int) {
	s.Current += delta
	s.Best = max(s.Best, s.Current)
}

// Reset starts a new game's count; Best is kept.
func (s *Score) Reset() {
	s.Current = 0
}
