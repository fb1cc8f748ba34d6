package quotelai

import "testing"

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"fr", "French"},
		{"pt-BR", "Brazilian Portuguese"},
		{"pt_PT", "Portuguese"}, // base language fallback
		{"zh-CN", "Simplified Chinese"},
		{"DE", "German"},
		{"xx", "xx"}, // fallback
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := LanguageName(tt.code); got != tt.expected {
				t.Errorf("LanguageName(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestNormalizeLang(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"zh-CN", "zh_cn"},
		{" en-US ", "en_us"},
		{"fr", "fr"},
	}

	for _, tt := range tests {
		if got := NormalizeLang(tt.input); got != tt.expected {
			t.Errorf("NormalizeLang(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsEnglish(t *testing.T) {
	for _, code := range []string{"en", "EN", "en-US", "en_GB", "en-au"} {
		if !IsEnglish(code) {
			t.Errorf("IsEnglish(%q) should be true", code)
		}
	}
	for _, code := range []string{"fr", "es-MX", "", "eng"} {
		if IsEnglish(code) {
			t.Errorf("IsEnglish(%q) should be false", code)
		}
	}
}
