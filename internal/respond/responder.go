// Package respond orchestrates a single conversational exchange: history
// mutation, model submission, and the primary/fallback retry protocol.
package respond

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/chasquibot/chasqui/internal/conversation"
	"github.com/chasquibot/chasqui/internal/gemini"
)

// Generator abstracts the model call so the protocol can be tested
// without the upstream API.
type Generator interface {
	Generate(ctx context.Context, tier gemini.Tier, history []conversation.Turn, live []conversation.Part) (string, error)
	Model(tier gemini.Tier) string
}

// Responder applies the submission protocol for one user message.
type Responder struct {
	store  *conversation.Store
	llm    Generator
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewResponder creates a Responder over the given store and model client.
func NewResponder(log *slog.Logger, store *conversation.Store, llm Generator) *Responder {
	if log == nil {
		log = slog.Default()
	}
	return &Responder{
		store:  store,
		llm:    llm,
		logger: log.With(slog.String("service", "respond")),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (r *Responder) userLock(userID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[userID] = l
	}
	return l
}

// Respond appends the user's turn, submits it starting at the primary
// tier, and returns the model's reply text. A quota-class failure on the
// primary rolls the user turn back and retries once at the fallback tier.
// Every failure path leaves history as it was before the call, so stored
// user turns are always ones that received (or will receive) an answer.
//
// The whole append-call-rollback sequence holds a per-user lock: two
// racing messages from the same user run one after the other, while
// different users proceed concurrently.
func (r *Responder) Respond(ctx context.Context, userID string, parts []conversation.Part) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("content is required")
	}
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var lastErr error
	for _, tier := range gemini.Tiers {
		r.store.Append(userID, conversation.Turn{Role: conversation.RoleUser, Parts: parts})
		history := r.store.HistoryExcludingLast(userID)

		text, err := r.llm.Generate(ctx, tier, history, parts)
		if err == nil {
			r.store.Append(userID, conversation.Turn{
				Role:  conversation.RoleModel,
				Parts: []conversation.Part{conversation.NewText(text)},
			})
			return text, nil
		}

		r.store.PopLast(userID)
		r.logger.Error("model call failed",
			slog.String("user_id", userID),
			slog.String("tier", tier.String()),
			slog.String("model", r.llm.Model(tier)),
			slog.Any("error", err),
		)
		lastErr = err
		if tier == gemini.TierPrimary && gemini.IsQuota(err) {
			continue
		}
		break
	}
	return "", lastErr
}

// UserMessage renders a failure for direct user display: a warning marker
// plus a bounded slice of the underlying error text.
func UserMessage(err error) string {
	return "⚠️ Error: " + truncate(err.Error(), 100)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back off to a rune boundary so the cut never splits a character.
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
