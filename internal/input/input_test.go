package input_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/ggpagent/internal/input"
)

func Test_DirectLineReader_ReadLine_skipsBlankLines(t *testing.T) {
	r := input.NewDirectReader(strings.NewReader("\n  \nTRUTH\n"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "TRUTH", line)
}

func Test_DirectLineReader_ReadLine_trimsSpace(t *testing.T) {
	r := input.NewDirectReader(strings.NewReader("  STEP  \n"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "STEP", line)
}

func Test_DirectLineReader_ReadLine_eof(t *testing.T) {
	r := input.NewDirectReader(strings.NewReader(""))

	_, err := r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func Test_DirectLineReader_ReadLine_lastLineNoNewline(t *testing.T) {
	r := input.NewDirectReader(strings.NewReader("QUIT"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "QUIT", line)
}

func Test_DirectLineReader_AllowBlank(t *testing.T) {
	r := input.NewDirectReader(strings.NewReader("\nTRUTH\n"))
	r.AllowBlank(true)

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "", line)
}

func Test_DirectLineReader_Close(t *testing.T) {
	r := input.NewDirectReader(strings.NewReader(""))
	assert.NoError(t, r.Close())
}
