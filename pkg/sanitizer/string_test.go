package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic trim",
			input: "  Luxury Beach Villa  ",
			want:  "Luxury Beach Villa",
		},
		{
			name:  "multiple spaces",
			input: "Cozy    Mountain Cabin",
			want:  "Cozy Mountain Cabin",
		},
		{
			name:  "tabs and newlines",
			input: "Great\t\nstay",
			want:  "Great stay",
		},
		{
			name:  "preserve special characters",
			input: " Café & Spa™ ",
			want:  "Café & Spa™",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := TrimAndNormalize(got); again != got {
				t.Errorf("TrimAndNormalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" Host@SmartHost.com ", "host@smarthost.com"},
		{"user@smarthost.com", "user@smarthost.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeEmail(tt.input); got != tt.want {
				t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeCurrency(t *testing.T) {
	if got := SanitizeCurrency(" brl "); got != "BRL" {
		t.Errorf("SanitizeCurrency() = %q, want BRL", got)
	}
}

func TestSanitizeImageURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases host only",
			input: "https://Images.Unsplash.com/photo-1499793983690?W=800#top",
			want:  "https://images.unsplash.com/photo-1499793983690?W=800",
		},
		{
			name:  "trims whitespace",
			input: "  https://example.com/a.jpg ",
			want:  "https://example.com/a.jpg",
		},
		{
			name:  "rejects missing scheme",
			input: "example.com/a.jpg",
			want:  "",
		},
		{
			name:  "rejects other schemes",
			input: "ftp://example.com/a.jpg",
			want:  "",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeImageURL(tt.input); got != tt.want {
				t.Errorf("SanitizeImageURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestImageHost(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://images.unsplash.com/photo-1", "images.unsplash.com"},
		{"https://PLUS.unsplash.com:443/x", "plus.unsplash.com"},
		{"/local/image.png", ""},
		{"::bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ImageHost(tt.input); got != tt.want {
				t.Errorf("ImageHost(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeAmenityNames(t *testing.T) {
	got := SanitizeAmenityNames([]string{" WiFi ", "wifi", "", "Hot   Tub", "Pool"})
	want := []string{"WiFi", "Hot Tub", "Pool"}

	if len(got) != len(want) {
		t.Fatalf("SanitizeAmenityNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SanitizeAmenityNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		n, lo, hi, want int
	}{
		{5, 1, 10, 5},
		{0, 1, 10, 1},
		{12, 1, 10, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.n, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.n, tt.lo, tt.hi, got, tt.want)
		}
	}
}
