package sdnotify

import (
	"bytes"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_NoSocket(t *testing.T) {
	t.Setenv("NOTIFY_SOCKET", "")
	var buf bytes.Buffer
	l := NewLifecycle(zerolog.New(&buf))

	l.Ready()
	l.Stopping()

	assert.Empty(t, buf.String())
}

func TestLifecycle_SendsStates(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "notify.sock")
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: socketPath, Net: "unixgram"})
	require.NoError(t, err)
	defer conn.Close()
	t.Setenv("NOTIFY_SOCKET", socketPath)

	l := NewLifecycle(zerolog.Nop())
	buf := make([]byte, 64)

	l.Ready()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, daemon.SdNotifyReady, string(buf[:n]))

	l.Stopping()
	n, err = conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, daemon.SdNotifyStopping, string(buf[:n]))
}

func TestLifecycle_ErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	l := NewLifecycle(zerolog.New(&buf))
	l.notify = func(bool, string) (bool, error) { return false, errors.New("socket gone") }

	l.Ready()

	assert.Contains(t, buf.String(), "socket gone")
	assert.Contains(t, buf.String(), `"state":"READY=1"`)
}
