package ui

import (
	"context"

	"github.com/google/uuid"

	"popcorn/internal/logger"
)

// requestToken identifies one lookup. Only the token of the latest
// request for an operation may apply its result.
type requestToken struct {
	seq uint64
	id  string
}

// inflight tracks the single outstanding request of one operation.
// It is shared by pointer between copies of a bubbletea model.
type inflight struct {
	op     string
	seq    uint64
	cancel context.CancelFunc
}

func newInflight(op string) *inflight {
	return &inflight{op: op}
}

// begin aborts the previous request and issues a new token with a
// context that is cancelled when the request is superseded.
func (f *inflight) begin() (context.Context, requestToken) {
	f.abort()
	tok := requestToken{seq: f.seq, id: uuid.NewString()}
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	return logger.WithRequestID(ctx, f.op, tok.id), tok
}

// abort cancels the outstanding request and invalidates its token.
func (f *inflight) abort() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.seq++
}

// finish reports whether tok is still current and releases its context.
func (f *inflight) finish(tok requestToken) bool {
	if tok.seq != f.seq {
		return false
	}
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	return true
}
