package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "detail list joins msg fields",
			body: `{"detail":[{"msg":"a"},{"msg":"b"}]}`,
			want: "a, b",
		},
		{
			name: "detail list with message fields",
			body: `{"detail":[{"message":"a"}]}`,
			want: "a",
		},
		{
			name: "detail string used directly",
			body: `{"detail":"x"}`,
			want: "x",
		},
		{
			name: "detail object message field",
			body: `{"detail":{"message":"y"}}`,
			want: "y",
		},
		{
			name: "top-level message fallback",
			body: `{"message":"top"}`,
			want: "top",
		},
		{
			name: "detail present but empty falls through to message",
			body: `{"detail":[],"message":"top"}`,
			want: "top",
		},
		{
			name: "no detail and no message",
			body: `{}`,
			want: DefaultErrorMessage,
		},
		{
			name: "not JSON at all",
			body: `<html>Bad Gateway</html>`,
			want: DefaultErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractErrorMessage([]byte(tt.body)))
		})
	}
}
