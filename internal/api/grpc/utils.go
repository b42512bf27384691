package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adamanr/workflow_portal/internal/controllers"
	"github.com/adamanr/workflow_portal/internal/entity"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtoToLoginRequest convert proto struct {email, password} to entity LoginRequest.
func ProtoToLoginRequest(req *structpb.Struct) *entity.LoginRequest {
	fields := req.GetFields()

	return &entity.LoginRequest{
		Email:    fields["email"].GetStringValue(),
		Password: fields["password"].GetStringValue(),
	}
}

// IdentityToMap convert entity Identity to a map accepted by structpb.
func IdentityToMap(identity entity.Identity) map[string]any {
	return map[string]any{
		"id":          identity.ID,
		"name":        identity.Name,
		"email":       identity.Email,
		"role":        string(identity.Role),
		"department":  identity.Department,
		"employee_id": identity.EmployeeID,
	}
}

// GetUserInfoFromMetadata get authorization from metadata.
func GetUserInfoFromMetadata(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("missing metadata")
	}

	if authorization := md.Get("authorization"); len(authorization) > 0 {
		return authorization[0], nil
	}

	return "", errors.New("missing authorization")
}

func (s *Server) sessionFromMetadata(ctx context.Context) (*controllers.Session, error) {
	token, err := GetUserInfoFromMetadata(ctx)
	if err != nil {
		s.deps.Logger.WarnContext(ctx, "Error getting user info from metadata", slog.String("error", err.Error()))
		return nil, status.Error(codes.Unauthenticated, controllers.ErrUnauthorized.Error())
	}

	session, err := s.Controllers.AuthController.Authenticate(ctx, token)
	if err != nil {
		return nil, grpcError(err)
	}

	return session, nil
}

// grpcError maps controller errors onto gRPC status codes.
func grpcError(err error) error {
	var verr *controllers.ValidationError

	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, controllers.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, controllers.ErrInvalidCredentials.Error())
	case errors.Is(err, controllers.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, controllers.ErrUnauthorized.Error())
	case errors.Is(err, controllers.ErrForbidden):
		return status.Error(codes.PermissionDenied, controllers.ErrForbidden.Error())
	case errors.Is(err, controllers.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, controllers.ErrInvalidTransition), errors.Is(err, controllers.ErrConflict):
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	return status.Error(codes.Internal, "internal error")
}

// grpcResponse wraps data in the {status, type, data} envelope used by the HTTP API.
func (s *Server) grpcResponse(ctx context.Context, data map[string]any) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(map[string]any{
		"status": http.StatusOK,
		"type":   "success",
		"data":   data,
	})
	if err != nil {
		s.deps.Logger.ErrorContext(ctx, "Error convert to structpb", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return resp, nil
}
