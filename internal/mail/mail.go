package mail

import (
	"context"

	"go.uber.org/zap"
)

// Sender entrega o link de confirmação de cadastro. A entrega real fica
// atrás desta porta; o padrão apenas registra o link no log.
type Sender interface {
	SendConfirmation(ctx context.Context, to, name, link string) error
}

type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendConfirmation(ctx context.Context, to, name, link string) error {
	s.log.Info("confirmation email",
		zap.String("to", to),
		zap.String("name", name),
		zap.String("link", link),
	)
	return nil
}
