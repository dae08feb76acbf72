package browser

import "testing"

func TestValidateSchemes(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://example.com/path?id=1", false},
		{"https://news.ycombinator.com/item?id=42", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"", true},
	}

	for _, tt := range tests {
		err := validate(tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("validate(%q): expected error, got nil", tt.url)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("validate(%q): unexpected error %v", tt.url, err)
		}
	}
}

func TestOpenerCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"windows", "rundll32"},
		{"freebsd", "xdg-open"},
	}

	for _, tt := range tests {
		name, args := openerCommand(tt.goos, "https://example.com")
		if name != tt.wantName {
			t.Errorf("openerCommand(%q) = %q, want %q", tt.goos, name, tt.wantName)
		}
		if len(args) == 0 || args[len(args)-1] != "https://example.com" {
			t.Errorf("openerCommand(%q) args = %v, URL must be last", tt.goos, args)
		}
	}
}
