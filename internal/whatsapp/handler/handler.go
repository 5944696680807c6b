package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/whatsapp"
	"github.com/fekuna/termas-hotel-service/internal/whatsapp/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
)

var _ hotelv1.WhatsAppServiceServer = (*WhatsAppHandler)(nil)

type WhatsAppHandler struct {
	uc     whatsapp.UseCase
	logger logger.ZapLogger
}

func NewWhatsAppHandler(uc whatsapp.UseCase, log logger.ZapLogger) *WhatsAppHandler {
	return &WhatsAppHandler{
		uc:     uc,
		logger: log,
	}
}

// SendMessage reports gateway failures in the result rather than as an RPC
// error, the same way Broadcast does per recipient.
func (h *WhatsAppHandler) SendMessage(ctx context.Context, req *hotelv1.SendWhatsAppRequest) (*hotelv1.WhatsAppSendResult, error) {
	res, err := h.uc.SendMessage(ctx, req.To, req.Message)
	if res == nil {
		h.logger.Error("send whatsapp failed", zap.String("to", req.To), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return mapResult(res), nil
}

func (h *WhatsAppHandler) Broadcast(ctx context.Context, req *hotelv1.BroadcastWhatsAppRequest) (*hotelv1.BroadcastWhatsAppResponse, error) {
	out, err := h.uc.Broadcast(ctx, req.Numbers, req.Message)
	if err != nil {
		h.logger.Error("whatsapp broadcast failed", zap.Int("recipients", len(req.Numbers)), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	resp := &hotelv1.BroadcastWhatsAppResponse{
		Success: out.Success,
		Results: make([]*hotelv1.WhatsAppSendResult, len(out.Results)),
	}
	for i := range out.Results {
		resp.Results[i] = mapResult(&out.Results[i])
	}
	return resp, nil
}

func (h *WhatsAppHandler) GetStatus(ctx context.Context, _ *emptypb.Empty) (*hotelv1.WhatsAppStatusResponse, error) {
	st := h.uc.Status(ctx)
	return &hotelv1.WhatsAppStatusResponse{
		Connected:         st.Connected,
		MessagesProcessed: st.MessagesProcessed,
		MessagesSent:      st.MessagesSent,
		Errors:            st.Errors,
		LastActivity:      st.LastActivity,
		InBusinessHours:   st.InBusinessHours,
		HoursStart:        int32(st.HoursStart),
		HoursEnd:          int32(st.HoursEnd),
	}, nil
}

func mapResult(r *dto.SendResult) *hotelv1.WhatsAppSendResult {
	return &hotelv1.WhatsAppSendResult{
		Number:  r.Number,
		Success: r.Success,
		Error:   r.Error,
	}
}
