package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ClientServiceName = "termas.hotel.v1.ClientService"

type Client struct {
	Id         string    `json:"id"`
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	LastName   string    `json:"last_name,omitempty"`
	Rut        string    `json:"rut,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	Country    string    `json:"country"`
	IsFrequent bool      `json:"is_frequent"`
	Ranking    int32     `json:"ranking"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	TotalSpent string    `json:"total_spent"`
	VisitCount int32     `json:"visit_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateClientRequest struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Rut      string `json:"rut"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Notes    string `json:"notes"`
}

type GetClientRequest struct {
	Id string `json:"id"`
}

type GetClientByRUTRequest struct {
	Rut string `json:"rut"`
}

type SearchClientsRequest struct {
	Query string `json:"query"`
	Limit int32  `json:"limit"`
}

type SearchClientsResponse struct {
	Clients []*Client `json:"clients"`
}

type ListClientsRequest struct {
	Search     string `json:"search"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	IsFrequent *bool  `json:"is_frequent"`
	Page       int32  `json:"page"`
	PageSize   int32  `json:"page_size"`
}

type ListClientsResponse struct {
	Clients []*Client `json:"clients"`
	Total   int32     `json:"total"`
}

type UpdateClientRequest struct {
	Id       string `json:"id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Rut      string `json:"rut"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Notes    string `json:"notes"`
}

type UpdateClientStatusRequest struct {
	Id     string `json:"id"`
	Status string `json:"status"`
}

type SetFrequentRequest struct {
	Id         string `json:"id"`
	IsFrequent bool   `json:"is_frequent"`
}

type SetRankingRequest struct {
	Id      string `json:"id"`
	Ranking int32  `json:"ranking"`
}

type DeleteClientRequest struct {
	Id string `json:"id"`
}

type ClientResponse struct {
	Client *Client `json:"client"`
}

type ClientServiceServer interface {
	CreateClient(context.Context, *CreateClientRequest) (*ClientResponse, error)
	GetClient(context.Context, *GetClientRequest) (*ClientResponse, error)
	GetClientByRUT(context.Context, *GetClientByRUTRequest) (*ClientResponse, error)
	SearchClients(context.Context, *SearchClientsRequest) (*SearchClientsResponse, error)
	ListClients(context.Context, *ListClientsRequest) (*ListClientsResponse, error)
	UpdateClient(context.Context, *UpdateClientRequest) (*ClientResponse, error)
	UpdateClientStatus(context.Context, *UpdateClientStatusRequest) (*ClientResponse, error)
	SetFrequent(context.Context, *SetFrequentRequest) (*ClientResponse, error)
	SetRanking(context.Context, *SetRankingRequest) (*ClientResponse, error)
	DeleteClient(context.Context, *DeleteClientRequest) (*emptypb.Empty, error)
}

var ClientService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ClientServiceName,
	HandlerType: (*ClientServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ClientServiceName, "CreateClient", ClientServiceServer.CreateClient),
		rpc.Unary(ClientServiceName, "GetClient", ClientServiceServer.GetClient),
		rpc.Unary(ClientServiceName, "GetClientByRUT", ClientServiceServer.GetClientByRUT),
		rpc.Unary(ClientServiceName, "SearchClients", ClientServiceServer.SearchClients),
		rpc.Unary(ClientServiceName, "ListClients", ClientServiceServer.ListClients),
		rpc.Unary(ClientServiceName, "UpdateClient", ClientServiceServer.UpdateClient),
		rpc.Unary(ClientServiceName, "UpdateClientStatus", ClientServiceServer.UpdateClientStatus),
		rpc.Unary(ClientServiceName, "SetFrequent", ClientServiceServer.SetFrequent),
		rpc.Unary(ClientServiceName, "SetRanking", ClientServiceServer.SetRanking),
		rpc.Unary(ClientServiceName, "DeleteClient", ClientServiceServer.DeleteClient),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterClientServiceServer(s grpc.ServiceRegistrar, srv ClientServiceServer) {
	s.RegisterService(&ClientService_ServiceDesc, srv)
}
