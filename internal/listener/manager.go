package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/pixil98/go-clicker/internal/player"
)

type ConnectionManager struct {
	sm *player.SessionManager
}

func NewConnectionManager(sm *player.SessionManager) *ConnectionManager {
	return &ConnectionManager{
		sm: sm,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.sm.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}
