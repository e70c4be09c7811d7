package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
)

// TelnetListener serves the game over plain telnet. The library takes
// care of option negotiation and CRLF, so connections go to the
// manager unwrapped.
type TelnetListener struct {
	port uint16
	cm   *ConnectionManager
}

func NewTelnetListener(port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		port: port,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	// Connections run on a context detached from ctx so shutdown can
	// stop the accept loop first and then cancel live sessions.
	connCtx, cancelConns := context.WithCancel(context.Background())
	defer cancelConns()

	handler := &telnetHandler{
		cm:  l.cm,
		ctx: connCtx,
	}

	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), handler)

	stop := context.AfterFunc(ctx, func() {
		svr.Stop()
		cancelConns()
	})
	defer stop()

	slog.InfoContext(ctx, "listening for telnet", "port", l.port)

	if err := svr.ListenAndServe(); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}

	handler.wg.Wait()
	return nil
}

type telnetHandler struct {
	wg  sync.WaitGroup
	cm  *ConnectionManager
	ctx context.Context
}

func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	h.wg.Add(1)
	defer h.wg.Done()

	h.cm.AcceptConnection(h.ctx, conn)

	if err := conn.Close(); err != nil {
		slog.WarnContext(h.ctx, "closing telnet connection", "error", err)
	}
}
