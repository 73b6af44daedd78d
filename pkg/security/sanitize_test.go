package security

import (
	"strings"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"simple string", "hello world", "hello world"},
		{"whitespace trim", "  hello world  ", "hello world"},
		{"null bytes removed", "hello\x00world", "helloworld"},
		{"multiple null bytes", "\x00test\x00input\x00", "testinput"},
		{"preserves newlines", "hello\nworld", "hello\nworld"},
		{"preserves tabs", "hello\tworld", "hello\tworld"},
		{"removes control chars", "hello\x01\x02\x03world", "helloworld"},
		{"unicode preserved", "hello 世界", "hello 世界"},
		{"emoji preserved", "hello 👋", "hello 👋"},
		{"mixed content", "  hello\x00\x01world  ", "helloworld"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeString(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"simple text", "hello world", "hello world"},
		{"script tag", "<script>alert('xss')</script>", "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;"},
		{"html entities", "<div>test</div>", "&lt;div&gt;test&lt;/div&gt;"},
		{"ampersand", "foo & bar", "foo &amp; bar"},
		{"quotes", `"quoted" text`, "&#34;quoted&#34; text"},
		{"angle brackets", "1 < 2 > 0", "1 &lt; 2 &gt; 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeHTML(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeHTML(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"single space", "hello world", "hello world"},
		{"multiple spaces", "hello    world", "hello world"},
		{"tabs", "hello\t\tworld", "hello world"},
		{"newlines", "hello\n\nworld", "hello world"},
		{"only whitespace", "     ", ""},
		{"complex mixed", "  hello  \t world  \n foo  ", "hello world foo"},
		{"carriage return", "hello\r\nworld", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeWhitespace(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		expected  string
	}{
		{"empty string", "", 10, ""},
		{"shorter than max", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"longer than max", "hello world", 5, "hello"},
		{"zero max length", "hello", 0, ""},
		{"truncate to 1", "hello", 1, "h"},
		{"very long string", strings.Repeat("a", 1000), 100, strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TruncateString(tt.input, tt.maxLength)
			if result != tt.expected {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLength, result, tt.expected)
			}
		})
	}
}

func TestRemoveControlCharacters(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no control chars", "hello world", "hello world"},
		{"with newline", "hello\nworld", "hello\nworld"},
		{"with tab", "hello\tworld", "hello\tworld"},
		{"with bell", "hello\aworld", "helloworld"},
		{"with carriage return", "hello\rworld", "helloworld"},
		{"multiple control chars", "\x00\x01\x02hello\x03\x04", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := removeControlCharacters(tt.input)
			if result != tt.expected {
				t.Errorf("removeControlCharacters(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
