package auth

import (
	"fmt"
	"io"
	"sync"

	"github.com/skratchdot/open-golang/open"
)

// BrowserOpener opens URLs in a browser. Interactive login uses it to hand
// the user off to the web app for token capture.
type BrowserOpener interface {
	Open(url string) error
}

// SystemBrowserOpener opens URLs using the system default browser.
type SystemBrowserOpener struct{}

// Open opens a URL in the system default browser.
func (s *SystemBrowserOpener) Open(url string) error {
	return open.Run(url)
}

// MockBrowserOpener is a mock implementation for testing.
type MockBrowserOpener struct {
	mu         sync.Mutex
	OpenedURLs []string
	Err        error
}

// Open records the URL and returns the configured error.
func (m *MockBrowserOpener) Open(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OpenedURLs = append(m.OpenedURLs, url)
	return m.Err
}

// OpenBrowserWithFallback tries to open the browser via opener and prints a
// manual fallback message to writer on failure.
func OpenBrowserWithFallback(opener BrowserOpener, url string, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "\nOpening browser to:\n%s\n\n", url)

	if err := opener.Open(url); err != nil {
		_, _ = fmt.Fprintf(writer, "Failed to open browser automatically.\n")
		_, _ = fmt.Fprintf(writer, "Please visit the URL above manually.\n")
	}
}
