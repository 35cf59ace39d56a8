package specmark

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "no markers",
			text:   "Let me ask a few more questions first.",
			wantOK: false,
		},
		{
			name:   "only start marker",
			text:   "!!!SPEC_START!!!\n# Draft",
			wantOK: false,
		},
		{
			name:   "only end marker",
			text:   "# Draft\n!!!SPEC_END!!!",
			wantOK: false,
		},
		{
			name:   "both markers",
			text:   "!!!SPEC_START!!!\n# Todo — Spec\n!!!SPEC_END!!!",
			want:   "# Todo — Spec",
			wantOK: true,
		},
		{
			name:   "surrounding chatter is dropped",
			text:   "Sure! !!!SPEC_START!!!\n# Todo — Spec\n!!!SPEC_END!!! Let me know what you think.",
			want:   "# Todo — Spec",
			wantOK: true,
		},
		{
			name:   "interior trimmed of whitespace",
			text:   "!!!SPEC_START!!!   \n\n# Spec body\n\n  !!!SPEC_END!!!",
			want:   "# Spec body",
			wantOK: true,
		},
		{
			name:   "end before start",
			text:   "!!!SPEC_END!!!middle!!!SPEC_START!!!",
			wantOK: false,
		},
		{
			name:   "empty interior",
			text:   "!!!SPEC_START!!!!!!SPEC_END!!!",
			want:   "",
			wantOK: true,
		},
		{
			name:   "whitespace only interior",
			text:   "!!!SPEC_START!!!  \n  !!!SPEC_END!!!",
			want:   "",
			wantOK: true,
		},
		{
			name:   "first end marker wins",
			text:   "!!!SPEC_START!!!one!!!SPEC_END!!!two!!!SPEC_END!!!",
			want:   "one",
			wantOK: true,
		},
		{
			name:   "first start marker wins",
			text:   "!!!SPEC_START!!!a!!!SPEC_START!!!b!!!SPEC_END!!!",
			want:   "a!!!SPEC_START!!!b",
			wantOK: true,
		},
		{
			name:   "markers embedded mid sentence",
			text:   "prefix!!!SPEC_START!!!payload!!!SPEC_END!!!suffix",
			want:   "payload",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Extract ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("Extract = %q, want %q", got, tt.want)
			}
		})
	}
}
