package validate

import "testing"

func TestUsername(t *testing.T) {
	valid := []string{"alex", "study_hall7", "abc"}
	for _, v := range valid {
		if err := Username(v); err != nil {
			t.Errorf("Username(%q) unexpected error: %v", v, err)
		}
	}

	invalid := []string{"", "ab", "Alex", "has space", "way_too_long_for_a_username"}
	for _, v := range invalid {
		if err := Username(v); err == nil {
			t.Errorf("Username(%q) expected error", v)
		}
	}
}

func TestEmail(t *testing.T) {
	if err := Email("alex@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range []string{"", "no-at-sign", "a@b", "two@@example.com"} {
		if err := Email(v); err == nil {
			t.Errorf("Email(%q) expected error", v)
		}
	}
}

func TestProgress(t *testing.T) {
	for _, v := range []int{0, 50, 100} {
		if err := Progress(v); err != nil {
			t.Errorf("Progress(%d) unexpected error: %v", v, err)
		}
	}
	for _, v := range []int{-1, 101} {
		if err := Progress(v); err == nil {
			t.Errorf("Progress(%d) expected error", v)
		}
	}
}

func TestRegisterUser(t *testing.T) {
	if err := RegisterUser("alex", "password123", "alex@example.com", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := RegisterUser("alex", "short", "alex@example.com", nil); err == nil {
		t.Fatal("expected password error")
	}
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	name := string(long)
	if err := RegisterUser("alex", "password123", "alex@example.com", &name); err == nil {
		t.Fatal("expected name length error")
	}
}

func TestCreateMaterial(t *testing.T) {
	if err := CreateMaterial("Intro to Psychology", nil, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CreateMaterial("", nil, 0); err == nil {
		t.Fatal("expected title error")
	}
	if err := CreateMaterial("ok", nil, 120); err == nil {
		t.Fatal("expected progress error")
	}
}
