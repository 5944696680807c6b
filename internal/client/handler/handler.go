package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/client"
	"github.com/fekuna/termas-hotel-service/internal/client/dto"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
)

type ClientHandler struct {
	uc     client.UseCase
	logger logger.ZapLogger
}

func NewClientHandler(uc client.UseCase, log logger.ZapLogger) *ClientHandler {
	return &ClientHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ClientHandler) CreateClient(ctx context.Context, req *hotelv1.CreateClientRequest) (*hotelv1.ClientResponse, error) {
	c, err := h.uc.CreateClient(ctx, &dto.ClientInput{
		Type:     req.Type,
		Name:     req.Name,
		LastName: req.LastName,
		RUT:      req.Rut,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Notes:    req.Notes,
	})
	if err != nil {
		h.logger.Error("failed to create client", zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ClientResponse{Client: mapClientToProto(c)}, nil
}

func (h *ClientHandler) GetClient(ctx context.Context, req *hotelv1.GetClientRequest) (*hotelv1.ClientResponse, error) {
	c, err := h.uc.GetClient(ctx, req.Id)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ClientResponse{Client: mapClientToProto(c)}, nil
}

func (h *ClientHandler) GetClientByRUT(ctx context.Context, req *hotelv1.GetClientByRUTRequest) (*hotelv1.ClientResponse, error) {
	c, err := h.uc.GetClientByRUT(ctx, req.Rut)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ClientResponse{Client: mapClientToProto(c)}, nil
}

func (h *ClientHandler) SearchClients(ctx context.Context, req *hotelv1.SearchClientsRequest) (*hotelv1.SearchClientsResponse, error) {
	clients, err := h.uc.SearchClients(ctx, req.Query, int(req.Limit))
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SearchClientsResponse{Clients: mapClients(clients)}, nil
}

func (h *ClientHandler) ListClients(ctx context.Context, req *hotelv1.ListClientsRequest) (*hotelv1.ListClientsResponse, error) {
	clients, count, err := h.uc.ListClients(ctx, &dto.ClientFilters{
		SearchQuery: req.Search,
		Type:        req.Type,
		Status:      req.Status,
		IsFrequent:  req.IsFrequent,
		Page:        int(req.Page),
		PageSize:    int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ListClientsResponse{Clients: mapClients(clients), Total: int32(count)}, nil
}

func (h *ClientHandler) UpdateClient(ctx context.Context, req *hotelv1.UpdateClientRequest) (*hotelv1.ClientResponse, error) {
	c, err := h.uc.UpdateClient(ctx, req.Id, &dto.ClientInput{
		Type:     req.Type,
		Name:     req.Name,
		LastName: req.LastName,
		RUT:      req.Rut,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ClientResponse{Client: mapClientToProto(c)}, nil
}

func (h *ClientHandler) UpdateClientStatus(ctx context.Context, req *hotelv1.UpdateClientStatusRequest) (*hotelv1.ClientResponse, error) {
	c, err := h.uc.UpdateClientStatus(ctx, req.Id, req.Status)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ClientResponse{Client: mapClientToProto(c)}, nil
}

func (h *ClientHandler) SetFrequent(ctx context.Context, req *hotelv1.SetFrequentRequest) (*hotelv1.ClientResponse, error) {
	c, err := h.uc.SetFrequent(ctx, req.Id, req.IsFrequent)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ClientResponse{Client: mapClientToProto(c)}, nil
}

func (h *ClientHandler) SetRanking(ctx context.Context, req *hotelv1.SetRankingRequest) (*hotelv1.ClientResponse, error) {
	c, err := h.uc.SetRanking(ctx, req.Id, int(req.Ranking))
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ClientResponse{Client: mapClientToProto(c)}, nil
}

func (h *ClientHandler) DeleteClient(ctx context.Context, req *hotelv1.DeleteClientRequest) (*emptypb.Empty, error) {
	deactivated, err := h.uc.DeleteClient(ctx, req.Id)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	h.logger.Info("client removed", zap.String("client_id", req.Id), zap.Bool("deactivated", deactivated))
	return &emptypb.Empty{}, nil
}

func mapClients(clients []model.Client) []*hotelv1.Client {
	out := make([]*hotelv1.Client, len(clients))
	for i := range clients {
		out[i] = mapClientToProto(&clients[i])
	}
	return out
}

func mapClientToProto(c *model.Client) *hotelv1.Client {
	if c == nil {
		return nil
	}
	return &hotelv1.Client{
		Id:         c.ID,
		Type:       c.Type,
		Name:       c.Name,
		LastName:   convert.Str(c.LastName),
		Rut:        convert.Str(c.RUT),
		Email:      convert.Str(c.Email),
		Phone:      convert.Str(c.Phone),
		Address:    convert.Str(c.Address),
		City:       convert.Str(c.City),
		Country:    c.Country,
		IsFrequent: c.IsFrequent,
		Ranking:    int32(c.Ranking),
		Status:     c.Status,
		Notes:      convert.Str(c.Notes),
		TotalSpent: c.TotalSpent.String(),
		VisitCount: int32(c.VisitCount),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
