package output_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/output"
)

func TestAnnotateCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no code is untouched",
			in:   "<strong>x</strong><br />",
			want: "<strong>x</strong><br />",
		},
		{
			name: "go snippet",
			in:   "<code>package main</code>",
			want: `<code class="language-go">package main</code>`,
		},
		{
			name: "undetected stays plain",
			in:   "<p>see <code>x</code></p>",
			want: "<p>see <code>x</code></p>",
		},
		{
			name: "existing class is kept",
			in:   `<code class="snippet">&lt;?php echo 1;</code>`,
			want: `<code class="snippet language-php">&lt;?php echo 1;</code>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := output.AnnotateCode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcess_AnnotateThenSanitize(t *testing.T) {
	t.Parallel()

	proc := output.New(output.Options{AnnotateCode: true, Sanitize: true})
	got, err := proc.Convert(context.Background(), bbcode.New(), "[CODE]SELECT * FROM users[/CODE]", false)
	require.NoError(t, err)

	assert.Equal(t, `<code class="language-sql">SELECT * FROM users</code>`, got)
}
