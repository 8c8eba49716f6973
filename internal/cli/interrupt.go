package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler manages graceful shutdown with friendly messages.
type InterruptHandler struct {
	writer      io.Writer
	cancelFunc  context.CancelFunc
	subject     string
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates an interrupt handler. subject names the work
// being interrupted ("Sync", "Reminder watch").
func NewInterruptHandler(writer io.Writer, subject string) *InterruptHandler {
	if writer == nil {
		writer = os.Stdout
	}
	if subject == "" {
		subject = "Operation"
	}
	return &InterruptHandler{
		writer:  writer,
		subject: subject,
	}
}

// HandleInterrupts sets up signal handling and returns a context that is
// canceled on SIGINT/SIGTERM or when the parent context ends.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.cancelFunc = cancel

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
		case <-ctx.Done():
		}
		h.mu.Lock()
		if !h.interrupted {
			h.interrupted = true
			h.showInterruptMessage()
		}
		h.mu.Unlock()
		cancel()
	}()

	return ctx
}

// showInterruptMessage displays a friendly interrupt message.
func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n\n" + FormatWarning(h.subject+" interrupted!") +
		"\n" + FormatInfo("Shutting down cleanly.") + "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
