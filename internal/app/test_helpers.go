package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an App that logs at debug level into a buffer. The
// returned buffers hold the report output and the log output.
func SetupAppTest(t *testing.T, cfg Config) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	testApp := NewApp(outBuffer, logBuffer, validated)

	t.Cleanup(func() {
		if os.Getenv("FNLISTS_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
