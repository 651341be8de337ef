package t2048

import "testing"

func TestScoreApply(t *testing.T) {
	var s Score
	s.Apply(4)
	s.Apply(8)
	if s.Current != 12 || s.Best != 12 {
		t.Errorf("score = %+v, want 12/12", s)
	}

	s.Reset()
	if s.Current != 0 {
		t.Errorf("Current after Reset = %d, want 0", s.Current)
	}
	if s.Best != 12 {
		t.Errorf("Best after Reset = %d, want 12", s.Best)
	}

	s.Apply(4)
	if s.Best != 12 {
		t.Errorf("Best dropped to %d", s.Best)
	}
	s.Apply(16)
	if s.Best != 20 {
		t.Errorf("Best = %d, want 20", s.Best)
	}
}
