package host

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/videolighter/desktop-host/internal/commands"
	"github.com/videolighter/desktop-host/internal/config"
	"github.com/videolighter/desktop-host/internal/messaging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type echoCommand struct{}

func (echoCommand) Name() string { return "echo" }

func (echoCommand) Handle(_ context.Context, req *messaging.Request) (interface{}, error) {
	return req.Path, nil
}

func newTestHost(t *testing.T) *Host {
	t.Helper()
	registry := commands.NewRegistry(zap.NewNop())
	registry.Register(commands.Ping{})
	registry.Register(echoCommand{})
	return New(registry, config.DefaultConfig(), zap.NewNop())
}

func frames(t *testing.T, reqs ...messaging.Request) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	for _, req := range reqs {
		data, err := json.Marshal(req)
		require.NoError(t, err)
		var prefix [4]byte
		binary.LittleEndian.PutUint32(prefix[:], uint32(len(data)))
		buf.Write(prefix[:])
		buf.Write(data)
	}
	return &buf
}

func readResponses(t *testing.T, out *bytes.Buffer) []messaging.Response {
	t.Helper()
	var resps []messaging.Response
	for out.Len() > 0 {
		var length uint32
		require.NoError(t, binary.Read(out, binary.LittleEndian, &length))
		body := make([]byte, length)
		_, err := io.ReadFull(out, body)
		require.NoError(t, err)
		var resp messaging.Response
		require.NoError(t, json.Unmarshal(body, &resp))
		resps = append(resps, resp)
	}
	return resps
}

func TestServe_RespondsInOrderUntilEOF(t *testing.T) {
	h := newTestHost(t)
	in := frames(t,
		messaging.Request{ID: "1", Command: "ping"},
		messaging.Request{ID: "2", Command: "echo", Path: "/tmp/test.txt"},
		messaging.Request{ID: "3", Command: "nope"},
	)
	var out bytes.Buffer

	require.NoError(t, h.Serve(context.Background(), in, &out))

	resps := readResponses(t, &out)
	require.Len(t, resps, 3)
	assert.Equal(t, "1", resps[0].ID)
	assert.Equal(t, "pong", resps[0].Result)
	assert.Equal(t, "/tmp/test.txt", resps[1].Result)
	assert.False(t, resps[2].Success)
	assert.Equal(t, commands.CodeUnknownCommand, resps[2].Error)
}

func TestServe_AssignsRequestID(t *testing.T) {
	h := newTestHost(t)
	var out bytes.Buffer

	require.NoError(t, h.Serve(context.Background(), frames(t, messaging.Request{Command: "ping"}), &out))

	resps := readResponses(t, &out)
	require.Len(t, resps, 1)
	_, err := uuid.Parse(resps[0].ID)
	assert.NoError(t, err)
}

func TestServe_EmptyInput(t *testing.T) {
	h := newTestHost(t)
	var out bytes.Buffer
	require.NoError(t, h.Serve(context.Background(), &bytes.Buffer{}, &out))
	assert.Zero(t, out.Len())
}

func TestServe_FramingError(t *testing.T) {
	h := newTestHost(t)
	in := bytes.NewBuffer([]byte{0, 0, 0, 0})

	err := h.Serve(context.Background(), in, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid message length")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestServe_WriteError(t *testing.T) {
	h := newTestHost(t)
	err := h.Serve(context.Background(), frames(t, messaging.Request{Command: "ping"}), failingWriter{})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestServe_ContextCancelled(t *testing.T) {
	h := newTestHost(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- h.Serve(ctx, pr, io.Discard) }()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
