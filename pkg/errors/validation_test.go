package errors

import (
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/cube.json", false},
		{"absolute", "/tmp/cube.json", false},
		{"empty", "", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "cube\x00.json", true},
		{"newline", "cube\n.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGon(t *testing.T) {
	for _, gon := range []int{3, 4, 10} {
		if err := ValidateGon(gon); err != nil {
			t.Errorf("ValidateGon(%d) = %v, want nil", gon, err)
		}
	}
	for _, gon := range []int{-1, 0, 2} {
		if err := ValidateGon(gon); !Is(err, ErrCodeMalformedInput) {
			t.Errorf("ValidateGon(%d) = %v, want %s", gon, err, ErrCodeMalformedInput)
		}
	}
}

func TestValidateSequence(t *testing.T) {
	tests := []struct {
		name    string
		seq     []int
		wantErr bool
	}{
		{"single face", []int{4}, false},
		{"two faces", []int{4, 0, 4}, false},
		{"three faces", []int{4, 0, 4, 2, 3}, false},
		{"empty", nil, true},
		{"even length", []int{4, 0}, true},
		{"small gon", []int{2, 0, 4}, true},
		{"nonzero root offset", []int{4, 1, 4}, true},
		{"zero interior offset", []int{4, 0, 4, 0, 4}, true},
		{"offset equals gon", []int{4, 0, 3, 3, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSequence(tt.seq)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSequence(%v) error = %v, wantErr %v", tt.seq, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSequence) {
				t.Errorf("ValidateSequence(%v) code = %s, want %s", tt.seq, GetCode(err), ErrCodeInvalidSequence)
			}
		})
	}
}

func TestValidateChirality(t *testing.T) {
	for _, s := range []string{"standard", "flipped", "Flipped"} {
		if err := ValidateChirality(s); err != nil {
			t.Errorf("ValidateChirality(%q) = %v", s, err)
		}
	}
	if err := ValidateChirality("mirror"); err == nil {
		t.Error("ValidateChirality(mirror) should fail")
	}
}
