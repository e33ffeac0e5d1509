package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadPromptLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "lf", input: "서울 카페\nnext", want: "서울 카페"},
		{name: "cr", input: "1번\rnext", want: "1번"},
		{name: "no newline at eof", input: "좋아요", want: "좋아요"},
		{name: "empty line", input: "\n", want: ""},
		{name: "eof", input: "", wantErr: io.EOF},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := readPromptLine(strings.NewReader(tc.input))
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantErr, err)
		})
	}
}

func TestReadPromptLine_NilReader(t *testing.T) {
	_, err := readPromptLine(nil)
	assert.ErrorIs(t, err, io.EOF)
}
