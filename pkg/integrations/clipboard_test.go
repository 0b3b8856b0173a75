package integrations

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClipboard(primary, fallback func(string) error) *Clipboard {
	return &Clipboard{
		primary:  primary,
		fallback: fallback,
		display:  30 * time.Millisecond,
	}
}

func TestClipboardCopy(t *testing.T) {
	var got string
	c := newTestClipboard(func(text string) error {
		got = text
		return nil
	}, nil)

	err := c.Copy("Pikachu, #025, Types: Electric")
	require.NoError(t, err)
	assert.Equal(t, "Pikachu, #025, Types: Electric", got)
	assert.True(t, c.Copied())
	assert.Empty(t, c.LastError())
}

func TestClipboardCopiedResets(t *testing.T) {
	c := newTestClipboard(func(string) error { return nil }, nil)

	require.NoError(t, c.Copy("test"))
	assert.True(t, c.Copied())

	assert.Eventually(t, func() bool { return !c.Copied() }, time.Second, 5*time.Millisecond)
}

func TestClipboardFallback(t *testing.T) {
	var fallbackText string
	c := newTestClipboard(
		func(string) error { return errClipboardUnsupported },
		func(text string) error {
			fallbackText = text
			return nil
		},
	)

	require.NoError(t, c.Copy("test"))
	assert.Equal(t, "test", fallbackText)
	assert.True(t, c.Copied())
}

func TestClipboardOSC52Fallback(t *testing.T) {
	var terminal bytes.Buffer
	c := newTestClipboard(func(string) error { return errClipboardUnsupported }, osc52Writer(&terminal))

	require.NoError(t, c.Copy("pikachu"))
	// OSC52 carries the text base64-encoded
	assert.Contains(t, terminal.String(), "\x1b]52;c;cGlrYWNodQ==")
}

func TestClipboardFailure(t *testing.T) {
	primaryErr := errors.New("xclip missing")
	c := newTestClipboard(
		func(string) error { return primaryErr },
		osc52Writer(nil),
	)

	err := c.Copy("test")

	var clipErr *ClipboardError
	require.True(t, errors.As(err, &clipErr))
	assert.ErrorIs(t, err, primaryErr)
	assert.ErrorIs(t, err, errNoTerminal)
	assert.False(t, c.Copied())
	assert.Equal(t, copyFailedMessage, c.LastError())
}

func TestClipboardErrorClearedOnNextCopy(t *testing.T) {
	fail := true
	c := newTestClipboard(func(string) error {
		if fail {
			return errors.New("busy")
		}
		return nil
	}, nil)

	assert.Error(t, c.Copy("test"))
	assert.NotEmpty(t, c.LastError())

	fail = false
	assert.NoError(t, c.Copy("test"))
	assert.Empty(t, c.LastError())
}
