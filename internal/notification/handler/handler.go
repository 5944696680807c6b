package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/notification"
	"github.com/fekuna/termas-hotel-service/internal/notification/dto"
	"github.com/fekuna/termas-hotel-service/internal/notification/render"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var _ hotelv1.NotificationServiceServer = (*NotificationHandler)(nil)

type NotificationHandler struct {
	uc     notification.UseCase
	logger logger.ZapLogger
}

func NewNotificationHandler(uc notification.UseCase, log logger.ZapLogger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *NotificationHandler) SendTemplate(ctx context.Context, req *hotelv1.SendTemplateRequest) (*hotelv1.SendTemplateResponse, error) {
	e, err := h.uc.Send(ctx, req.TemplateId, req.Recipient, templateData(req.Data), req.RefType, req.RefId)
	if err != nil {
		h.logger.Error("failed to send template", zap.String("template", req.TemplateId), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SendTemplateResponse{Email: mapSentEmailToProto(e)}, nil
}

func (h *NotificationHandler) ListTemplates(ctx context.Context, _ *hotelv1.ListTemplatesRequest) (*hotelv1.ListTemplatesResponse, error) {
	templates := h.uc.ListTemplates(ctx)
	out := make([]*hotelv1.EmailTemplate, 0, len(templates))
	for _, t := range templates {
		et := &hotelv1.EmailTemplate{Id: t.ID, Name: t.Name, Category: t.Category, Body: t.Body}
		for _, v := range t.Variables {
			et.Variables = append(et.Variables, &hotelv1.TemplateVariable{
				Key: v.Key, Label: v.Label, Type: v.Type, Required: v.Required,
			})
		}
		out = append(out, et)
	}
	return &hotelv1.ListTemplatesResponse{Templates: out}, nil
}

func (h *NotificationHandler) ListSentEmails(ctx context.Context, req *hotelv1.ListSentEmailsRequest) (*hotelv1.ListSentEmailsResponse, error) {
	emails, count, err := h.uc.ListSentEmails(ctx, &dto.SentEmailFilters{
		TemplateID: req.TemplateId,
		Status:     req.Status,
		Recipient:  req.Recipient,
		RefType:    req.RefType,
		RefID:      req.RefId,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.SentEmail, 0, len(emails))
	for i := range emails {
		out = append(out, mapSentEmailToProto(&emails[i]))
	}
	return &hotelv1.ListSentEmailsResponse{Emails: out, Total: int32(count)}, nil
}

// templateData reads the money values as decimals.
func templateData(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if !render.IsCurrency(k) {
			out[k] = v
			continue
		}
		if d, err := decimal.NewFromString(v); err == nil {
			out[k] = d
			continue
		}
		out[k] = v
	}
	return out
}

func mapSentEmailToProto(e *model.SentEmail) *hotelv1.SentEmail {
	return &hotelv1.SentEmail{
		Id:         e.ID,
		TemplateId: e.TemplateID,
		Recipient:  e.Recipient,
		Subject:    e.Subject,
		Status:     e.Status,
		Error:      convert.Str(e.Error),
		RefType:    convert.Str(e.RefType),
		RefId:      convert.Str(e.RefID),
		CreatedAt:  e.CreatedAt,
	}
}
