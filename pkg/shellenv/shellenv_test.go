package shellenv

import "testing"

func TestSnapshot_Get(t *testing.T) {
	s := NewSnapshot(map[string]string{"PATH": "/bin"})
	if v, ok := s.Get("PATH"); !ok || v != "/bin" {
		t.Errorf("Get(PATH) = %q, %v", v, ok)
	}
	if _, ok := s.Get("MISSING"); ok {
		t.Errorf("Get(MISSING) ok = true, want false")
	}
}

func TestSnapshot_IsolatedFromSource(t *testing.T) {
	src := map[string]string{"A": "1"}
	s := NewSnapshot(src)
	src["A"] = "2"
	if v, _ := s.Get("A"); v != "1" {
		t.Errorf("snapshot observed mutation of its source map: got %q", v)
	}
}

func TestSnapshot_CDPATHOrDefault(t *testing.T) {
	tests := []struct {
		vars map[string]string
		want []string
	}{
		{map[string]string{}, []string{"."}},
		{map[string]string{"CDPATH": ""}, []string{"."}},
		{map[string]string{"CDPATH": ".:/opt"}, []string{".", "/opt"}},
	}
	for _, tc := range tests {
		got := NewSnapshot(tc.vars).CDPATHOrDefault(":")
		if len(got) != len(tc.want) {
			t.Errorf("CDPATHOrDefault(%v) = %v, want %v", tc.vars, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("CDPATHOrDefault(%v) = %v, want %v", tc.vars, got, tc.want)
				break
			}
		}
	}
}
