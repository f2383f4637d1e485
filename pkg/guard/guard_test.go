package guard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatternGuardRedact(t *testing.T) {
	g := NewPatternGuard()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "email",
			in:   "Concern raised by jane.doe@example.com about ChatGPT",
			want: "Concern raised by [REDACTED:EMAIL] about ChatGPT",
		},
		{
			name: "ssn",
			in:   "Pasted 123-45-6789 into a chatbot",
			want: "Pasted [REDACTED:SSN] into a chatbot",
		},
		{
			name: "ip address",
			in:   "Model server at 10.0.12.4 is public",
			want: "Model server at [REDACTED:IP_ADDRESS] is public",
		},
		{
			name: "card",
			in:   "Card 4111 1111 1111 1111 seen in logs",
			want: "Card [REDACTED:CREDIT_CARD] seen in logs",
		},
		{
			name: "clean text",
			in:   "Shadow AI Tool Detected: Otter",
			want: "Shadow AI Tool Detected: Otter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, g.Redact(tt.in))
		})
	}
}

func TestPatternGuardScan(t *testing.T) {
	matches := NewPatternGuard().Scan("mail ops@corp.io or 555-123-4567")
	require.Len(t, matches, 2)
	require.Equal(t, KindEmail, matches[0].Kind)
	require.Equal(t, "ops@corp.io", matches[0].Value)
	require.Equal(t, KindPhone, matches[1].Kind)
}

func TestNop(t *testing.T) {
	var g Guard = Nop{}
	require.Empty(t, g.Scan("a@b.com"))
	require.Equal(t, "a@b.com", g.Redact("a@b.com"))
}
