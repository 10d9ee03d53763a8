package rpc

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/d1nch8g/snakeaudio/applog"
	"github.com/d1nch8g/snakeaudio/control"
	"github.com/d1nch8g/snakeaudio/engine"
	"github.com/d1nch8g/snakeaudio/queue"
)

type recorder struct {
	mu   sync.Mutex
	cmds []engine.Command
	err  error
}

func (r *recorder) Send(cmd engine.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recorder) sent() []engine.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]engine.Command(nil), r.cmds...)
}

// serve starts a server on an in-memory listener and returns a client for it
func serve(t *testing.T, rec *recorder, logDir string) (*Client, *grpc.ClientConn) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(LogFailures))
	Register(srv, NewServer(control.New(rec), applog.New(logDir)))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufnet: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return NewClient(conn), conn
}

func TestCallsReachController(t *testing.T) {
	rec := &recorder{}
	c, _ := serve(t, rec, t.TempDir())
	ctx := context.Background()

	if err := c.PlayEffect(ctx, "eat", 0.8, false); err != nil {
		t.Fatalf("PlayEffect failed: %v", err)
	}
	if err := c.PlayEffect(ctx, "eat", 0.8, true); err != nil {
		t.Fatalf("muted PlayEffect failed: %v", err)
	}
	if err := c.StartMusic(ctx, 2, false); err != nil {
		t.Fatalf("StartMusic failed: %v", err)
	}
	if err := c.SetMusicVolume(ctx, 0.25, false); err != nil {
		t.Fatalf("SetMusicVolume failed: %v", err)
	}
	if err := c.StopMusic(ctx); err != nil {
		t.Fatalf("StopMusic failed: %v", err)
	}

	want := []engine.Command{
		engine.PlayEffect{Name: "eat", Gain: 0.8},
		engine.StartMusic{Gain: 1.0},
		engine.SetMusicGain{Gain: 0.25},
		engine.StopMusic{},
	}
	got := rec.sent()
	if len(got) != len(want) {
		t.Fatalf("sent %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestClosedEngineIsUnavailable(t *testing.T) {
	c, _ := serve(t, &recorder{err: queue.ErrClosed}, t.TempDir())

	err := c.PlayEffect(context.Background(), "ui", 1, false)
	if status.Code(err) != codes.Unavailable {
		t.Fatalf("PlayEffect = %v, want Unavailable", err)
	}
	if err := c.StopMusic(context.Background()); status.Code(err) != codes.Unavailable {
		t.Fatalf("StopMusic = %v, want Unavailable", err)
	}
}

func TestInvalidRequests(t *testing.T) {
	rec := &recorder{}
	_, conn := serve(t, rec, t.TempDir())

	tests := []struct {
		method string
		fields map[string]any
	}{
		{"PlayEffect", map[string]any{"volume": 1.0}},
		{"PlayEffect", map[string]any{"name": "", "volume": 1.0}},
		{"PlayEffect", map[string]any{"name": "eat"}},
		{"StartMusic", map[string]any{"volume": "loud"}},
		{"SetMusicVolume", map[string]any{"volume": 1.0, "muted": "yes"}},
		{"AppendLog", map[string]any{}},
		{"AppendLog", map[string]any{"lines": "one line"}},
		{"AppendLog", map[string]any{"lines": []any{"ok", 3.0}}},
	}
	for _, tt := range tests {
		in, err := structpb.NewStruct(tt.fields)
		if err != nil {
			t.Fatal(err)
		}
		err = conn.Invoke(context.Background(), method(tt.method), in, &emptypb.Empty{})
		if status.Code(err) != codes.InvalidArgument {
			t.Errorf("%s(%v) = %v, want InvalidArgument", tt.method, tt.fields, err)
		}
	}

	if got := rec.sent(); len(got) != 0 {
		t.Fatalf("invalid requests produced commands: %v", got)
	}
}

func TestAppendLogAndPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c, _ := serve(t, &recorder{}, dir)
	ctx := context.Background()

	path, err := c.LogPath(ctx)
	if err != nil {
		t.Fatalf("LogPath failed: %v", err)
	}
	if want := filepath.Join(dir, applog.FileName); path != want {
		t.Fatalf("LogPath = %q, want %q", path, want)
	}

	if err := c.AppendLog(ctx, []string{"score 12", "died"}); err != nil {
		t.Fatalf("AppendLog failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "score 12\ndied\n" {
		t.Fatalf("log contents = %q", data)
	}
}

func TestAppendLogFailure(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	c, _ := serve(t, &recorder{}, file)

	err := c.AppendLog(context.Background(), []string{"x"})
	if status.Code(err) != codes.Internal {
		t.Fatalf("AppendLog = %v, want Internal", err)
	}
}

func TestClientCloseLeavesSharedConn(t *testing.T) {
	c, conn := serve(t, &recorder{}, t.TempDir())
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := conn.Invoke(context.Background(), method("StopMusic"), &emptypb.Empty{}, &emptypb.Empty{}); err != nil {
		t.Fatalf("shared connection closed: %v", err)
	}
}
