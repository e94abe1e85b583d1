package prompt

import "testing"

func TestParseBool(t *testing.T) {
	for _, in := range []string{"yes", "Y", "on", "true", "1"} {
		if v, err := ParseBool(in); err != nil || !v {
			t.Fatalf("ParseBool(%q) = %t, %v", in, v, err)
		}
	}
	for _, in := range []string{"no", "n", "OFF", "false", "0"} {
		if v, err := ParseBool(in); err != nil || v {
			t.Fatalf("ParseBool(%q) = %t, %v", in, v, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatalf("expected error for maybe")
	}
}
