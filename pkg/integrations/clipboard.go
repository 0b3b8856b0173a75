package integrations

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// CopiedDisplay is how long Copied stays true after a successful copy.
const CopiedDisplay = 2 * time.Second

const copyFailedMessage = "Could not copy to clipboard"

var (
	errClipboardUnsupported = errors.New("no system clipboard available")
	errNoTerminal           = errors.New("no terminal to send OSC52 sequence to")
)

// ClipboardError is returned when neither the system clipboard nor the
// terminal fallback accepted the text.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return "copy to clipboard: " + e.Err.Error()
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}

// Clipboard copies text to the system clipboard, falling back to an OSC52
// escape sequence on terminals without a clipboard utility (ssh sessions,
// containers).
type Clipboard struct {
	mu       sync.Mutex
	primary  func(string) error
	fallback func(string) error
	display  time.Duration
	copied   bool
	lastErr  string
	timer    *time.Timer
	gen      int
}

// NewClipboard uses out as the terminal for the OSC52 fallback.
func NewClipboard(out io.Writer) *Clipboard {
	return &Clipboard{
		primary:  writeSystemClipboard,
		fallback: osc52Writer(out),
		display:  CopiedDisplay,
	}
}

func writeSystemClipboard(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

func osc52Writer(out io.Writer) func(string) error {
	return func(text string) error {
		if out == nil {
			return errNoTerminal
		}
		_, err := osc52.New(text).WriteTo(out)
		return err
	}
}

// Copy places text on the clipboard. There is no retry.
func (c *Clipboard) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.copied = false
	c.lastErr = ""

	err := c.primary(text)
	if err != nil && c.fallback != nil {
		if ferr := c.fallback(text); ferr != nil {
			err = errors.Join(err, ferr)
		} else {
			err = nil
		}
	}
	if err != nil {
		c.lastErr = copyFailedMessage
		return &ClipboardError{Err: err}
	}

	c.copied = true
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.display, func() {
		c.mu.Lock()
		if c.gen == gen {
			c.copied = false
		}
		c.mu.Unlock()
	})
	return nil
}

// Copied is true for CopiedDisplay after the last successful copy.
func (c *Clipboard) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

func (c *Clipboard) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
