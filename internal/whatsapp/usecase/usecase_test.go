package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/termas-hotel-service/config"
	"github.com/fekuna/termas-hotel-service/internal/assistant"
	assistantdto "github.com/fekuna/termas-hotel-service/internal/assistant/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/whatsapp/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type sentMessage struct {
	chatID string
	text   string
}

type fakeSender struct {
	sent    []sentMessage
	failFor map[string]error
}

func (f *fakeSender) Send(_ context.Context, chatID, text string) error {
	if err := f.failFor[chatID]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

type fakeAssistant struct {
	assistant.UseCase
	reply string
	err   error
	input *assistantdto.ChatInput
}

func (f *fakeAssistant) Chat(_ context.Context, in *assistantdto.ChatInput) (*assistant.Reply, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &assistant.Reply{Text: f.reply}, nil
}

var hotelCfg = config.HotelConfig{
	Name:    "Hotel Termas",
	Phone:   "+56 9 1111 2222",
	Email:   "contacto@termas.cl",
	Address: "Camino a las Termas km 12",
}

// newUseCase pins the clock to a weekday at the given Santiago hour.
func newUseCase(t *testing.T, bot assistant.UseCase, hour int) (*whatsAppUseCase, *fakeSender) {
	t.Helper()
	sender := &fakeSender{failFor: map[string]error{}}
	uc := NewWhatsAppUseCase(sender, bot, config.WhatsAppConfig{
		HoursStart: 8,
		HoursEnd:   22,
		Timezone:   "America/Santiago",
	}, hotelCfg, logger.NewNop()).(*whatsAppUseCase)

	loc := uc.hours.Location
	uc.now = func() time.Time { return time.Date(2024, 7, 9, hour, 30, 0, 0, loc) }
	uc.limiter = rate.NewLimiter(rate.Inf, 1)
	return uc, sender
}

func incoming(body string) *dto.IncomingMessage {
	return &dto.IncomingMessage{ID: "m1", From: "56912345678@c.us", Body: body, Name: "Ana"}
}

func TestHandleIncoming_Commands(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"/inicio", "Bienvenido a *Hotel Termas*"},
		{"/HABITACIONES", "TIPOS DE HABITACIONES"},
		{"/spa", "SPA"},
		{"/restaurante", "RESTAURANTE"},
		{"/reserva quiero una suite", "HACER UNA RESERVA"},
		{"/precios", "TARIFAS"},
		{"/ubicacion", "Camino a las Termas km 12"},
		{"/contacto", "contacto@termas.cl"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			uc, sender := newUseCase(t, nil, 23)

			reply, err := uc.HandleIncoming(context.Background(), incoming(tt.body))
			require.NoError(t, err)
			assert.Contains(t, reply, tt.want)
			require.Len(t, sender.sent, 1)
			assert.Equal(t, "56912345678@c.us", sender.sent[0].chatID)
			assert.Equal(t, reply, sender.sent[0].text)
		})
	}
}

func TestHandleIncoming_UnknownCommand(t *testing.T) {
	uc, _ := newUseCase(t, nil, 10)

	reply, err := uc.HandleIncoming(context.Background(), incoming("/menu"))
	require.NoError(t, err)
	assert.Contains(t, reply, "Comando no reconocido: /menu")
	assert.Contains(t, reply, "• /inicio - Mostrar menú principal")
	assert.Contains(t, reply, "• /estado - Estado del servicio del bot")
}

func TestHandleIncoming_Status(t *testing.T) {
	uc, _ := newUseCase(t, nil, 10)

	_, err := uc.HandleIncoming(context.Background(), incoming("/spa"))
	require.NoError(t, err)
	reply, err := uc.HandleIncoming(context.Background(), incoming("/estado"))
	require.NoError(t, err)

	assert.Contains(t, reply, "Operativo")
	assert.Contains(t, reply, "Mensajes procesados: 2")
	assert.Contains(t, reply, "09-07-2024 10:30")
	assert.Contains(t, reply, "Horario comercial: SÍ")
}

func TestHandleIncoming_OutOfHours(t *testing.T) {
	bot := &fakeAssistant{reply: "no debería usarse"}
	uc, sender := newUseCase(t, bot, 23)

	reply, err := uc.HandleIncoming(context.Background(), incoming("¿tienen piscina?"))
	require.NoError(t, err)
	assert.Contains(t, reply, "Fuera de horario comercial")
	assert.Contains(t, reply, `"¿tienen piscina?"`)
	assert.Contains(t, reply, "8:00 - 22:00")
	assert.Nil(t, bot.input)
	assert.Len(t, sender.sent, 1)
}

func TestHandleIncoming_AIAnswer(t *testing.T) {
	bot := &fakeAssistant{reply: "Sí, tenemos piscina termal abierta hasta las 21:00."}
	uc, _ := newUseCase(t, bot, 10)

	reply, err := uc.HandleIncoming(context.Background(), incoming("¿tienen piscina?"))
	require.NoError(t, err)
	assert.Contains(t, reply, "piscina termal")
	assert.Contains(t, reply, "_Tip: Usa /habitaciones")

	require.NotNil(t, bot.input)
	assert.Equal(t, FeatureWhatsApp, bot.input.FeatureType)
	assert.Equal(t, "56912345678", bot.input.SessionID)
	assert.Equal(t, "Ana", bot.input.Name)
}

func TestHandleIncoming_AIAnswerMentioningCommand(t *testing.T) {
	bot := &fakeAssistant{reply: "Revisa /spa para ver los masajes."}
	uc, _ := newUseCase(t, bot, 10)

	reply, err := uc.HandleIncoming(context.Background(), incoming("masajes?"))
	require.NoError(t, err)
	assert.Equal(t, "Revisa /spa para ver los masajes.", reply)
}

func TestHandleIncoming_AIFailureFallsBack(t *testing.T) {
	bot := &fakeAssistant{err: errors.New("quota exceeded")}
	uc, _ := newUseCase(t, bot, 10)

	msg := incoming("hola")
	msg.Name = ""
	reply, err := uc.HandleIncoming(context.Background(), msg)
	require.NoError(t, err)
	assert.Contains(t, reply, "Hola Cliente")
	assert.EqualValues(t, 1, uc.Status(context.Background()).Errors)
}

func TestHandleIncoming_Ignored(t *testing.T) {
	uc, sender := newUseCase(t, nil, 10)

	for _, msg := range []*dto.IncomingMessage{
		nil,
		{From: "56912345678@c.us", Body: "hola", IsFromMe: true},
		{From: "123@g.us", Body: "hola", IsGroup: true},
		{From: "56912345678@c.us", Body: "   "},
	} {
		reply, err := uc.HandleIncoming(context.Background(), msg)
		require.NoError(t, err)
		assert.Empty(t, reply)
	}
	assert.Empty(t, sender.sent)
	assert.Zero(t, uc.Status(context.Background()).MessagesProcessed)
}

func TestSendMessage(t *testing.T) {
	uc, sender := newUseCase(t, nil, 10)

	res, err := uc.SendMessage(context.Background(), "9 1234 5678", "hola")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "56912345678", res.Number)
	assert.Equal(t, "56912345678@c.us", sender.sent[0].chatID)

	_, err = uc.SendMessage(context.Background(), "abc", "hola")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = uc.SendMessage(context.Background(), "912345678", " ")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestSendMessage_GatewayError(t *testing.T) {
	uc, sender := newUseCase(t, nil, 10)
	sender.failFor["56912345678@c.us"] = errors.New("not ready")

	res, err := uc.SendMessage(context.Background(), "912345678", "hola")
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "not ready", res.Error)
}

func TestBroadcast(t *testing.T) {
	uc, sender := newUseCase(t, nil, 10)
	sender.failFor["56922222222@c.us"] = errors.New("not on whatsapp")

	out, err := uc.Broadcast(context.Background(), []string{"911111111", "922222222", "x"}, "Promo spa")
	require.NoError(t, err)
	assert.True(t, out.Success)
	require.Len(t, out.Results, 3)
	assert.True(t, out.Results[0].Success)
	assert.False(t, out.Results[1].Success)
	assert.Equal(t, "not on whatsapp", out.Results[1].Error)
	assert.False(t, out.Results[2].Success)
	assert.Equal(t, "x", out.Results[2].Number)
	assert.Len(t, sender.sent, 1)
}

func TestBroadcast_CanceledContext(t *testing.T) {
	uc, sender := newUseCase(t, nil, 10)
	uc.limiter = rate.NewLimiter(rate.Every(time.Hour), 1)
	ctx, cancel := context.WithCancel(context.Background())

	cancel()
	out, err := uc.Broadcast(ctx, []string{"911111111", "922222222"}, "Promo")
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.False(t, out.Results[1].Success)
	assert.NotEmpty(t, out.Results[1].Error)
	assert.LessOrEqual(t, len(sender.sent), 1)
}

func TestBroadcast_Validation(t *testing.T) {
	uc, _ := newUseCase(t, nil, 10)

	_, err := uc.Broadcast(context.Background(), nil, "hola")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = uc.Broadcast(context.Background(), []string{"911111111"}, "")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestStatus(t *testing.T) {
	uc, _ := newUseCase(t, nil, 23)

	st := uc.Status(context.Background())
	assert.True(t, st.Connected)
	assert.False(t, st.InBusinessHours)
	assert.Nil(t, st.LastActivity)
	assert.Equal(t, 8, st.HoursStart)
	assert.Equal(t, 22, st.HoursEnd)

	_, err := uc.SendMessage(context.Background(), "911111111", "hola")
	require.NoError(t, err)
	st = uc.Status(context.Background())
	assert.EqualValues(t, 1, st.MessagesSent)
	require.NotNil(t, st.LastActivity)
}
