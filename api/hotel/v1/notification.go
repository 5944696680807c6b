package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
)

const NotificationServiceName = "termas.hotel.v1.NotificationService"

type TemplateVariable struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type EmailTemplate struct {
	Id        string              `json:"id"`
	Name      string              `json:"name"`
	Category  string              `json:"category"`
	Body      string              `json:"body"`
	Variables []*TemplateVariable `json:"variables"`
}

type SentEmail struct {
	Id         string    `json:"id"`
	TemplateId string    `json:"template_id"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	RefType    string    `json:"ref_type,omitempty"`
	RefId      string    `json:"ref_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SendTemplateRequest carries template data as strings. Numeric values of
// money keys render as pesos.
type SendTemplateRequest struct {
	TemplateId string            `json:"template_id"`
	Recipient  string            `json:"recipient"`
	Data       map[string]string `json:"data"`
	RefType    string            `json:"ref_type"`
	RefId      string            `json:"ref_id"`
}

type SendTemplateResponse struct {
	Email *SentEmail `json:"email"`
}

type ListTemplatesRequest struct{}

type ListTemplatesResponse struct {
	Templates []*EmailTemplate `json:"templates"`
}

type ListSentEmailsRequest struct {
	TemplateId string `json:"template_id"`
	Status     string `json:"status"`
	Recipient  string `json:"recipient"`
	RefType    string `json:"ref_type"`
	RefId      string `json:"ref_id"`
	Page       int32  `json:"page"`
	PageSize   int32  `json:"page_size"`
}

type ListSentEmailsResponse struct {
	Emails []*SentEmail `json:"emails"`
	Total  int32        `json:"total"`
}

type NotificationServiceServer interface {
	SendTemplate(context.Context, *SendTemplateRequest) (*SendTemplateResponse, error)
	ListTemplates(context.Context, *ListTemplatesRequest) (*ListTemplatesResponse, error)
	ListSentEmails(context.Context, *ListSentEmailsRequest) (*ListSentEmailsResponse, error)
}

var NotificationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: NotificationServiceName,
	HandlerType: (*NotificationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(NotificationServiceName, "SendTemplate", NotificationServiceServer.SendTemplate),
		rpc.Unary(NotificationServiceName, "ListTemplates", NotificationServiceServer.ListTemplates),
		rpc.Unary(NotificationServiceName, "ListSentEmails", NotificationServiceServer.ListSentEmails),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterNotificationServiceServer(s grpc.ServiceRegistrar, srv NotificationServiceServer) {
	s.RegisterService(&NotificationService_ServiceDesc, srv)
}
