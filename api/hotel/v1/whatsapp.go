package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const WhatsAppServiceName = "termas.hotel.v1.WhatsAppService"

type SendWhatsAppRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type WhatsAppSendResult struct {
	Number  string `json:"number"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BroadcastWhatsAppRequest struct {
	Numbers []string `json:"numbers"`
	Message string   `json:"message"`
}

type BroadcastWhatsAppResponse struct {
	Success bool                  `json:"success"`
	Results []*WhatsAppSendResult `json:"results"`
}

type WhatsAppStatusResponse struct {
	Connected         bool       `json:"connected"`
	MessagesProcessed int64      `json:"messages_processed"`
	MessagesSent      int64      `json:"messages_sent"`
	Errors            int64      `json:"errors"`
	LastActivity      *time.Time `json:"last_activity,omitempty"`
	InBusinessHours   bool       `json:"in_business_hours"`
	HoursStart        int32      `json:"hours_start"`
	HoursEnd          int32      `json:"hours_end"`
}

type WhatsAppServiceServer interface {
	SendMessage(context.Context, *SendWhatsAppRequest) (*WhatsAppSendResult, error)
	Broadcast(context.Context, *BroadcastWhatsAppRequest) (*BroadcastWhatsAppResponse, error)
	GetStatus(context.Context, *emptypb.Empty) (*WhatsAppStatusResponse, error)
}

var WhatsAppService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: WhatsAppServiceName,
	HandlerType: (*WhatsAppServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(WhatsAppServiceName, "SendMessage", WhatsAppServiceServer.SendMessage),
		rpc.Unary(WhatsAppServiceName, "Broadcast", WhatsAppServiceServer.Broadcast),
		rpc.Unary(WhatsAppServiceName, "GetStatus", WhatsAppServiceServer.GetStatus),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterWhatsAppServiceServer(s grpc.ServiceRegistrar, srv WhatsAppServiceServer) {
	s.RegisterService(&WhatsAppService_ServiceDesc, srv)
}
