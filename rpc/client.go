package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls the snakeaudio.Audio service
type Client struct {
	cc   grpc.ClientConnInterface
	conn *grpc.ClientConn
}

// Dial connects to a daemon on a local address. The connection is
// unauthenticated and meant for loopback use.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &Client{cc: conn, conn: conn}, nil
}

// NewClient wraps an existing connection. Close leaves it open.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) PlayEffect(ctx context.Context, name string, volume float64, muted bool) error {
	return c.call(ctx, "PlayEffect", map[string]any{"name": name, "volume": volume, "muted": muted})
}

func (c *Client) StartMusic(ctx context.Context, volume float64, muted bool) error {
	return c.call(ctx, "StartMusic", map[string]any{"volume": volume, "muted": muted})
}

func (c *Client) StopMusic(ctx context.Context) error {
	return c.cc.Invoke(ctx, method("StopMusic"), &emptypb.Empty{}, &emptypb.Empty{})
}

func (c *Client) SetMusicVolume(ctx context.Context, volume float64, muted bool) error {
	return c.call(ctx, "SetMusicVolume", map[string]any{"volume": volume, "muted": muted})
}

func (c *Client) AppendLog(ctx context.Context, lines []string) error {
	list := make([]any, len(lines))
	for i, l := range lines {
		list[i] = l
	}
	return c.call(ctx, "AppendLog", map[string]any{"lines": list})
}

func (c *Client) LogPath(ctx context.Context) (string, error) {
	out := &wrapperspb.StringValue{}
	if err := c.cc.Invoke(ctx, method("LogPath"), &emptypb.Empty{}, out); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

func (c *Client) call(ctx context.Context, name string, fields map[string]any) error {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", name, err)
	}
	return c.cc.Invoke(ctx, method(name), in, &emptypb.Empty{})
}

func method(name string) string {
	return "/" + ServiceName + "/" + name
}
