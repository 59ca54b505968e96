package voice

import "testing"

func TestDefaultRangesOrdering(t *testing.T) {
	ranges := DefaultRanges()
	order := []Name{Soprano, Alto, Tenor, Bass}
	for i := 0; i < len(order)-1; i++ {
		hi, _ := ranges.Range(order[i])
		lo, _ := ranges.Range(order[i+1])
		if hi.High < lo.High {
			t.Errorf("%s range %v should not be lower overall than %s range %v", order[i], hi, order[i+1], lo)
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Low: 60, High: 81}
	if !r.Contains(60) || !r.Contains(81) || r.Contains(59) || r.Contains(82) {
		t.Errorf("Range.Contains boundary check failed for %v", r)
	}
}

func TestVarString(t *testing.T) {
	v := Var{Voice: Soprano, Time: 3}
	if v.String() != "S@3" {
		t.Errorf("Var.String() = %q, want %q", v.String(), "S@3")
	}
}
