package window

import "testing"

func TestResponsiveSize(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{0, 350},
		{320, 350},
		{480, 350},
		{481, 400},
		{768, 400},
		{769, 500},
		{2560, 500},
	}

	for _, tt := range tests {
		if got := ResponsiveSize(tt.width); got != tt.want {
			t.Errorf("ResponsiveSize(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}
