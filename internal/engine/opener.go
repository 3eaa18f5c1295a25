package engine

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Opener opens a URL outside the runtime.
type Opener interface {
	Open(url string) error
}

// ErrURL is returned for URLs the opener refuses.
var ErrURL = errors.New("open: unsupported url")

// SystemOpener opens URLs with the desktop's default handler.
type SystemOpener struct{}

// Open starts the platform URL handler without waiting for it.
func (SystemOpener) Open(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%w: %q", ErrURL, url)
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go cmd.Wait() //nolint:errcheck // the handler outlives the call
	return nil
}

// DisabledOpener refuses every URL, for sessions whose desktop is not the
// player's, such as SSH.
type DisabledOpener struct{}

// Open always fails.
func (DisabledOpener) Open(url string) error {
	return fmt.Errorf("%w: opening urls is disabled in this session", ErrURL)
}
