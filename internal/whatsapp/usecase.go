package whatsapp

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/whatsapp/dto"
)

type UseCase interface {
	// HandleIncoming answers msg and sends the answer back. Messages sent by
	// the bot itself or to groups are ignored and return an empty reply.
	HandleIncoming(ctx context.Context, msg *dto.IncomingMessage) (string, error)
	SendMessage(ctx context.Context, to, text string) (*dto.SendResult, error)
	Broadcast(ctx context.Context, numbers []string, text string) (*dto.BroadcastResult, error)
	Status(ctx context.Context) *model.BotStatus
}

// Sender delivers a text to a gateway chat id. Satisfied by gateway.Client.
type Sender interface {
	Send(ctx context.Context, chatID, text string) error
}
