package lexer

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScannerNextAndUnread(t *testing.T) {
	t.Parallel()

	s, err := NewScanner("test.py", strings.NewReader("ab"))
	require.NoError(t, err)

	b, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, byte('a'), b)

	b, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, byte('b'), b)

	_, err = s.Next()
	require.ErrorIs(t, err, io.EOF)

	s.Unread(1)

	b, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, byte('b'), b)
}

func TestScannerPeek(t *testing.T) {
	t.Parallel()

	s, err := NewScanner("test.py", strings.NewReader("x"))
	require.NoError(t, err)

	b, err := s.Peek()
	require.NoError(t, err)
	require.Equal(t, byte('x'), b)

	// Peek does not advance.
	b, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, byte('x'), b)

	_, err = s.Peek()
	require.ErrorIs(t, err, io.EOF)
}

func TestScannerLocation(t *testing.T) {
	t.Parallel()

	s, err := NewScanner("test.py", strings.NewReader("ab\ncd"))
	require.NoError(t, err)

	require.Equal(t, "test.py:1:0", s.Location().String())

	for i := 0; i < 3; i++ {
		_, err := s.Next()
		require.NoError(t, err)
	}

	require.Equal(t, "test.py:2:0", s.Location().String())

	_, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, "test.py:2:1", s.Location().String())
}
