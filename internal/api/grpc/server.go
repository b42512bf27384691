package api

import (
	"context"
	"log/slog"

	"github.com/adamanr/workflow_portal/internal/controllers"
	"github.com/adamanr/workflow_portal/internal/view"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "workflow.v1.Portal"

// PortalServer is the server API of the workflow.v1.Portal service. Messages
// are protobuf well-known types so no generated code is needed.
type PortalServer interface {
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Logout(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Whoami(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ClassifyStatus(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

func unaryHandler[Req any, Resp any](method string, call func(PortalServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(PortalServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(PortalServer), ctx, req.(*Req))
		})
	}
}

var PortalServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PortalServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unaryHandler("Login", PortalServer.Login)},
		{MethodName: "Logout", Handler: unaryHandler("Logout", PortalServer.Logout)},
		{MethodName: "Whoami", Handler: unaryHandler("Whoami", PortalServer.Whoami)},
		{MethodName: "ClassifyStatus", Handler: unaryHandler("ClassifyStatus", PortalServer.ClassifyStatus)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "workflow/v1/portal.proto",
}

func RegisterPortalServer(s grpc.ServiceRegistrar, srv PortalServer) {
	s.RegisterService(&PortalServiceDesc, srv)
}

type Server struct {
	deps        *controllers.Dependens
	Controllers *controllers.Controllers
}

// NewServer create new server.
func NewServer(deps *controllers.Dependens, ctrls *controllers.Controllers) *Server {
	return &Server{
		deps:        deps,
		Controllers: ctrls,
	}
}

var _ PortalServer = &Server{}

// Login authenticates a user and returns a JWT token.
func (s *Server) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	session, err := s.Controllers.AuthController.Login(ctx, ProtoToLoginRequest(req))
	if err != nil {
		s.deps.Logger.WarnContext(ctx, "Error logging in", slog.String("error", err.Error()))
		return nil, grpcError(err)
	}

	return s.grpcResponse(ctx, map[string]any{
		"access_token": session.Token,
		"expires_in":   int64(session.ExpiresAt.Sub(s.deps.Clock.Now()).Seconds()),
		"view":         session.View().String(),
		"identity":     IdentityToMap(session.Identity),
	})
}

// Logout revokes the token sent in the authorization metadata.
func (s *Server) Logout(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	session, err := s.sessionFromMetadata(ctx)
	if err != nil {
		return nil, err
	}

	s.Controllers.AuthController.Logout(ctx, session)

	return &emptypb.Empty{}, nil
}

func (s *Server) Whoami(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	session, err := s.sessionFromMetadata(ctx)
	if err != nil {
		return nil, err
	}

	return s.grpcResponse(ctx, map[string]any{
		"identity": IdentityToMap(session.Identity),
		"view":     session.View().String(),
	})
}

// ClassifyStatus returns the badge category for a status token.
func (s *Server) ClassifyStatus(_ context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(string(view.Classify(req.GetValue()))), nil
}
