package services

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tags and entities",
			in:   "<p>A &amp; B</p>",
			want: "A & B",
		},
		{
			name: "whitespace collapse",
			in:   "  multiple   spaces ",
			want: "multiple spaces",
		},
		{
			name: "namespaced jats markup",
			in:   "<jats:p>We study capital flows.</jats:p>",
			want: "We study capital flows.",
		},
		{
			name: "quote entities",
			in:   "&quot;Risk&quot; &#39;premia&#39; &ldquo;matter&rdquo;",
			want: "\"Risk\" 'premia' “matter”",
		},
		{
			name: "unknown entity passes through",
			in:   "alpha &copy; beta",
			want: "alpha &copy; beta",
		},
		{
			name: "nbsp becomes space",
			in:   "a&nbsp;b",
			want: "a b",
		},
		{
			name: "ligatures resolved",
			in:   "eﬃcient ﬁrms",
			want: "efficient firms",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepairAuthorCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "all caps repaired", in: "JANE DOE", want: "Jane Doe"},
		{name: "mixed case preserved", in: "Jane McDoe", want: "Jane McDoe"},
		{name: "already title case", in: "Jane Doe", want: "Jane Doe"},
		{name: "empty", in: "", want: ""},
		{name: "single caps word", in: "SMITH", want: "Smith"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairAuthorCase(tt.in); got != tt.want {
				t.Errorf("RepairAuthorCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripAbstractLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "label removed", in: "Abstract We study markets.", want: "We study markets."},
		{name: "case insensitive", in: "ABSTRACT We study markets.", want: "We study markets."},
		{name: "no label", in: "We study markets.", want: "We study markets."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripAbstractLabel(tt.in); got != tt.want {
				t.Errorf("StripAbstractLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
