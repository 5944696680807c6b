package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fekuna/termas-hotel-service/config"
	"github.com/fekuna/termas-hotel-service/internal/assistant"
	assistantdto "github.com/fekuna/termas-hotel-service/internal/assistant/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/whatsapp"
	"github.com/fekuna/termas-hotel-service/internal/whatsapp/dto"
	"github.com/fekuna/termas-hotel-service/pkg/i18n"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	FeatureWhatsApp = "whatsapp"

	// broadcastInterval spaces broadcast sends so the gateway account is not
	// flagged for spam.
	broadcastInterval = time.Second
)

type connectionProber interface {
	Connected(ctx context.Context) bool
}

type whatsAppUseCase struct {
	sender    whatsapp.Sender
	assistant assistant.UseCase
	hotel     config.HotelConfig
	hours     whatsapp.BusinessHours
	limiter   *rate.Limiter
	logger    logger.ZapLogger
	now       func() time.Time

	processed atomic.Int64
	sent      atomic.Int64
	errors    atomic.Int64

	mu           sync.Mutex
	lastActivity time.Time
}

// NewWhatsAppUseCase builds the bot. bot may be nil, in which case free text
// inside business hours gets the canned fallback answer.
func NewWhatsAppUseCase(
	sender whatsapp.Sender,
	bot assistant.UseCase,
	cfg config.WhatsAppConfig,
	hotel config.HotelConfig,
	log logger.ZapLogger,
) whatsapp.UseCase {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn("Unknown whatsapp timezone, using UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}
	return &whatsAppUseCase{
		sender:    sender,
		assistant: bot,
		hotel:     hotel,
		hours:     whatsapp.BusinessHours{Start: cfg.HoursStart, End: cfg.HoursEnd, Location: loc},
		limiter:   rate.NewLimiter(rate.Every(broadcastInterval), 1),
		logger:    log,
		now:       time.Now,
	}
}

func (uc *whatsAppUseCase) HandleIncoming(ctx context.Context, msg *dto.IncomingMessage) (string, error) {
	if msg == nil || msg.IsFromMe || msg.IsGroup {
		return "", nil
	}
	body := strings.TrimSpace(msg.Body)
	number := whatsapp.NumberFromChat(msg.From)
	if body == "" || number == "" {
		return "", nil
	}

	uc.processed.Add(1)
	uc.touch()
	uc.logger.Info("WhatsApp message received", zap.String("from", number), zap.Bool("command", whatsapp.IsCommand(body)))

	reply := uc.answer(ctx, msg, number, body)
	if _, err := uc.SendMessage(ctx, number, reply); err != nil {
		return reply, err
	}
	return reply, nil
}

func (uc *whatsAppUseCase) answer(ctx context.Context, msg *dto.IncomingMessage, number, body string) string {
	if whatsapp.IsCommand(body) {
		return uc.commandReply(whatsapp.ExtractCommand(body))
	}

	now := uc.now()
	if !uc.hours.Contains(now) {
		return i18n.T("", "bot.out_of_hours", uc.templateData(map[string]any{"Body": body}))
	}

	name := strings.TrimSpace(msg.Name)
	fallback := func() string {
		if name == "" {
			name = i18n.T("", "bot.customer", nil)
		}
		return i18n.T("", "bot.fallback", map[string]any{"Name": name})
	}
	if uc.assistant == nil {
		return fallback()
	}

	reply, err := uc.assistant.Chat(ctx, &assistantdto.ChatInput{
		SessionID:   number,
		Message:     body,
		FeatureType: FeatureWhatsApp,
		Name:        name,
	})
	if err != nil || strings.TrimSpace(reply.Text) == "" {
		uc.errors.Add(1)
		uc.logger.Warn("AI answer failed, sending fallback", zap.String("from", number), zap.Error(err))
		return fallback()
	}

	text := strings.TrimSpace(reply.Text)
	if !strings.Contains(text, "/") {
		text += "\n\n" + i18n.T("", "bot.ai_tip", nil)
	}
	return text
}

func (uc *whatsAppUseCase) commandReply(command string) string {
	data := uc.templateData(nil)
	switch command {
	case whatsapp.CmdInicio:
		return i18n.T("", "bot.welcome", data)
	case whatsapp.CmdHabitaciones:
		return i18n.T("", "bot.rooms", data)
	case whatsapp.CmdSpa:
		return i18n.T("", "bot.spa", data)
	case whatsapp.CmdRestaurante:
		return i18n.T("", "bot.restaurant", data)
	case whatsapp.CmdReserva:
		return i18n.T("", "bot.reservation", data)
	case whatsapp.CmdPrecios:
		return i18n.T("", "bot.prices", data)
	case whatsapp.CmdUbicacion:
		return i18n.T("", "bot.location", data)
	case whatsapp.CmdContacto:
		return i18n.T("", "bot.contact", data)
	case whatsapp.CmdEstado:
		return uc.statusReply()
	}

	lines := make([]string, 0, len(whatsapp.Commands))
	for _, c := range whatsapp.Commands {
		lines = append(lines, "• "+c+" - "+i18n.T("", "cmd."+strings.TrimPrefix(c, "/"), nil))
	}
	return i18n.T("", "bot.unknown_command", map[string]any{
		"Command":  command,
		"Commands": strings.Join(lines, "\n"),
	})
}

func (uc *whatsAppUseCase) statusReply() string {
	now := uc.now().In(uc.hours.Location)
	state := i18n.T("", "bot.state_ready", nil)
	if uc.sender == nil {
		state = i18n.T("", "bot.state_down", nil)
	}
	inHours := i18n.T("", "bot.no", nil)
	if uc.hours.Contains(now) {
		inHours = i18n.T("", "bot.yes", nil)
	}
	last := "-"
	if t := uc.last(); !t.IsZero() {
		last = t.In(uc.hours.Location).Format("02-01-2006 15:04")
	}
	return i18n.T("", "bot.status", map[string]any{
		"State":        state,
		"Processed":    uc.processed.Load(),
		"LastActivity": last,
		"Now":          now.Format("15:04"),
		"InHours":      inHours,
	})
}

func (uc *whatsAppUseCase) templateData(extra map[string]any) map[string]any {
	data := map[string]any{
		"HotelName": uc.hotel.Name,
		"Address":   uc.hotel.Address,
		"Phone":     uc.hotel.Phone,
		"Email":     uc.hotel.Email,
		"Start":     uc.hours.Start,
		"End":       uc.hours.End,
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (uc *whatsAppUseCase) SendMessage(ctx context.Context, to, text string) (*dto.SendResult, error) {
	number := whatsapp.FormatPhoneNumber(to)
	if number == "" {
		return nil, fmt.Errorf("%w: recipient phone number is required", model.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message is required", model.ErrInvalidInput)
	}

	result := &dto.SendResult{Number: number}
	if uc.sender == nil {
		uc.errors.Add(1)
		result.Error = "whatsapp sender is not configured"
		return result, fmt.Errorf("send whatsapp to %s: %s", number, result.Error)
	}
	if err := uc.sender.Send(ctx, number+"@c.us", text); err != nil {
		uc.errors.Add(1)
		uc.logger.Error("Failed to send WhatsApp message", zap.String("to", number), zap.Error(err))
		result.Error = err.Error()
		return result, fmt.Errorf("send whatsapp to %s: %w", number, err)
	}

	uc.sent.Add(1)
	uc.touch()
	result.Success = true
	return result, nil
}

func (uc *whatsAppUseCase) Broadcast(ctx context.Context, numbers []string, text string) (*dto.BroadcastResult, error) {
	if len(numbers) == 0 {
		return nil, fmt.Errorf("%w: at least one recipient is required", model.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message is required", model.ErrInvalidInput)
	}

	out := &dto.BroadcastResult{Results: make([]dto.SendResult, 0, len(numbers))}
	for i, n := range numbers {
		if err := uc.limiter.Wait(ctx); err != nil {
			for _, rest := range numbers[i:] {
				out.Results = append(out.Results, dto.SendResult{Number: rest, Error: err.Error()})
			}
			break
		}

		res, err := uc.SendMessage(ctx, n, text)
		switch {
		case res != nil:
			out.Results = append(out.Results, *res)
		case err != nil:
			out.Results = append(out.Results, dto.SendResult{Number: n, Error: err.Error()})
		}
		if res != nil && res.Success {
			out.Success = true
		}
	}

	uc.logger.Info("WhatsApp broadcast finished", zap.Int("recipients", len(numbers)), zap.Bool("success", out.Success))
	return out, nil
}

func (uc *whatsAppUseCase) Status(ctx context.Context) *model.BotStatus {
	connected := uc.sender != nil
	if p, ok := uc.sender.(connectionProber); ok {
		connected = p.Connected(ctx)
	}
	st := &model.BotStatus{
		Connected:         connected,
		MessagesProcessed: uc.processed.Load(),
		MessagesSent:      uc.sent.Load(),
		Errors:            uc.errors.Load(),
		InBusinessHours:   uc.hours.Contains(uc.now()),
		HoursStart:        uc.hours.Start,
		HoursEnd:          uc.hours.End,
	}
	if t := uc.last(); !t.IsZero() {
		st.LastActivity = &t
	}
	return st
}

func (uc *whatsAppUseCase) touch() {
	uc.mu.Lock()
	uc.lastActivity = uc.now()
	uc.mu.Unlock()
}

func (uc *whatsAppUseCase) last() time.Time {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.lastActivity
}
