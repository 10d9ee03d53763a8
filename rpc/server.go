// Package rpc exposes playback and log commands to the host process over gRPC.
//
// Requests and replies use the protobuf well-known types, so no generated code
// is needed on either side:
//
//	PlayEffect      Struct{name, volume, muted}  -> Empty
//	StartMusic      Struct{volume, muted}        -> Empty
//	StopMusic       Empty                        -> Empty
//	SetMusicVolume  Struct{volume, muted}        -> Empty
//	AppendLog       Struct{lines}                -> Empty
//	LogPath         Empty                        -> StringValue
package rpc

import (
	"context"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/d1nch8g/snakeaudio/applog"
	"github.com/d1nch8g/snakeaudio/control"
)

const ServiceName = "snakeaudio.Audio"

// AudioServer is the server API for the snakeaudio.Audio service
type AudioServer interface {
	PlayEffect(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	StartMusic(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	StopMusic(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	SetMusicVolume(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	AppendLog(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	LogPath(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AudioServer)(nil),
	Methods: []grpc.MethodDesc{
		unary[structpb.Struct]("PlayEffect", AudioServer.PlayEffect),
		unary[structpb.Struct]("StartMusic", AudioServer.StartMusic),
		unary[emptypb.Empty]("StopMusic", AudioServer.StopMusic),
		unary[structpb.Struct]("SetMusicVolume", AudioServer.SetMusicVolume),
		unary[structpb.Struct]("AppendLog", AudioServer.AppendLog),
		unary[emptypb.Empty]("LogPath", AudioServer.LogPath),
	},
	Streams: []grpc.StreamDesc{},
}

// unary builds the method descriptor for a call taking *T
func unary[T any, PT interface {
	*T
	proto.Message
}, R any](method string, call func(AudioServer, context.Context, PT) (R, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PT(new(T))
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(AudioServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(PT))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Register attaches srv to the gRPC server
func Register(s grpc.ServiceRegistrar, srv AudioServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// LogFailures logs every call that returns an error
func LogFailures(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		log.Printf("%s failed: %v", info.FullMethod, err)
	}
	return resp, err
}

// Server forwards calls to a controller and a log file.
type Server struct {
	ctl *control.Controller
	log *applog.Log
}

func NewServer(ctl *control.Controller, l *applog.Log) *Server {
	return &Server{ctl: ctl, log: l}
}

func (s *Server) PlayEffect(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	name, err := stringField(in, "name")
	if err != nil {
		return nil, err
	}
	volume, muted, err := volumeFields(in)
	if err != nil {
		return nil, err
	}
	return unavailable(s.ctl.PlayEffect(name, volume, muted))
}

func (s *Server) StartMusic(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	volume, muted, err := volumeFields(in)
	if err != nil {
		return nil, err
	}
	return unavailable(s.ctl.StartMusic(volume, muted))
}

func (s *Server) StopMusic(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return unavailable(s.ctl.StopMusic())
}

func (s *Server) SetMusicVolume(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	volume, muted, err := volumeFields(in)
	if err != nil {
		return nil, err
	}
	return unavailable(s.ctl.SetMusicVolume(volume, muted))
}

func (s *Server) AppendLog(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	v, ok := in.GetFields()["lines"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, `missing field "lines"`)
	}
	list := v.GetListValue()
	if list == nil {
		return nil, status.Error(codes.InvalidArgument, `field "lines" must be a list`)
	}

	lines := make([]string, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		line, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "lines[%d] is not a string", i)
		}
		lines = append(lines, line.StringValue)
	}

	if err := s.log.Append(lines); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) LogPath(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(s.log.Path()), nil
}

func unavailable(err error) (*emptypb.Empty, error) {
	if err != nil {
		return nil, status.Error(codes.Unavailable, err.Error())
	}
	return &emptypb.Empty{}, nil
}

func stringField(in *structpb.Struct, key string) (string, error) {
	v, ok := in.GetFields()[key].GetKind().(*structpb.Value_StringValue)
	if !ok || v.StringValue == "" {
		return "", status.Errorf(codes.InvalidArgument, "field %q must be a non-empty string", key)
	}
	return v.StringValue, nil
}

// volumeFields reads the required volume and the optional muted flag
func volumeFields(in *structpb.Struct) (float64, bool, error) {
	fields := in.GetFields()
	volume, ok := fields["volume"].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false, status.Error(codes.InvalidArgument, `field "volume" must be a number`)
	}

	muted := false
	if v, ok := fields["muted"]; ok {
		b, ok := v.GetKind().(*structpb.Value_BoolValue)
		if !ok {
			return 0, false, status.Error(codes.InvalidArgument, `field "muted" must be a bool`)
		}
		muted = b.BoolValue
	}
	return volume.NumberValue, muted, nil
}
