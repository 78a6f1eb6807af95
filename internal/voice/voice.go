// Package voice hosts the session that serializes external intents.
// Transcripts and tool calls from the voice collaborator (or the HTTP
// surface standing in for it) are queued onto one dispatch loop, so every
// state transition applies in the order its event was accepted. Each tool
// call is acknowledged with a status keyed by the call's id.
package voice

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/picstash/picstash/internal/command"
)

// Handler consumes the serialized intents. The command dispatcher
// implements it.
type Handler interface {
	HandleTranscript(utterance string)
	HandleToolCall(call command.ToolCall) command.ToolStatus
}

// ErrClosed is returned when submitting to a session that is not running.
var ErrClosed = errors.New("voice session is closed")

// event is one queued intent: a transcript, or a tool call with its
// reply channel. Both kinds share one queue so cross-kind order is
// exactly acceptance order.
type event struct {
	utterance string
	call      command.ToolCall
	reply     chan command.ToolStatus // nil for transcripts
}

// Session is the single-threaded event queue. It is listening while Run
// is active; closing the session or cancelling its context resets the
// listening flag deterministically.
type Session struct {
	handler   Handler
	events    chan event
	closed    chan struct{}
	listening atomic.Bool
	closeOnce atomic.Bool
}

// NewSession builds a session around a handler.
func NewSession(h Handler) *Session {
	return &Session{
		handler: h,
		events:  make(chan event, 32),
		closed:  make(chan struct{}),
	}
}

// Run consumes queued events until the context is cancelled or the
// session is closed. It is the only goroutine that touches the handler
// through this session.
func (s *Session) Run(ctx context.Context) {
	s.listening.Store(true)
	defer s.listening.Store(false)

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Voice session cancelled", "err", ctx.Err())
			return
		case <-s.closed:
			return
		case e := <-s.events:
			if e.reply != nil {
				e.reply <- s.handler.HandleToolCall(e.call)
			} else {
				s.handler.HandleTranscript(e.utterance)
			}
		}
	}
}

// Listening reports whether the dispatch loop is active.
func (s *Session) Listening() bool {
	return s.listening.Load()
}

// Close stops the dispatch loop. Safe to call more than once.
func (s *Session) Close() {
	if s.closeOnce.CompareAndSwap(false, true) {
		close(s.closed)
	}
}

// SubmitTranscript queues one utterance.
func (s *Session) SubmitTranscript(ctx context.Context, utterance string) error {
	return s.submit(ctx, event{utterance: utterance})
}

// SubmitToolCall queues one tool call and waits for its acknowledgement.
func (s *Session) SubmitToolCall(ctx context.Context, call command.ToolCall) (command.ToolStatus, error) {
	e := event{call: call, reply: make(chan command.ToolStatus, 1)}
	if err := s.submit(ctx, e); err != nil {
		return command.ToolStatus{}, err
	}

	select {
	case status := <-e.reply:
		return status, nil
	case <-s.closed:
		return command.ToolStatus{}, ErrClosed
	case <-ctx.Done():
		return command.ToolStatus{}, ctx.Err()
	}
}

func (s *Session) submit(ctx context.Context, e event) error {
	// The queue is buffered, so a closed session must be rejected before
	// the send is attempted.
	select {
	case <-s.closed:
		return ErrClosed
	default:
	}
	select {
	case s.events <- e:
		return nil
	case <-s.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
