// Package session holds per-conversation dialogue state and drives the
// clarify/retrieve/compose/generate sequence for each turn.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"carbongpt/internal/clarify"
	"carbongpt/internal/domain"
	"carbongpt/internal/prompt"
	"carbongpt/internal/retriever"
)

// ErrGeneration marks generator failures. The session keeps its original
// query so the caller can retry the same turn without losing context.
var ErrGeneration = errors.New("generation failed")

// State of the dialogue within a session.
type State int

const (
	StateIdle State = iota
	StateAwaitingAnswer
	StateAwaitingClarification
	StateResolved
)

// Turn is what one dialogue turn hands to the presentation layer. On a
// successful turn exactly one of Answer and Clarification is non-empty;
// Sources accompany answers only.
type Turn struct {
	Answer        string
	Sources       []domain.SignificantSource
	Clarification string
}

// Session is a single conversation. Turns are serialized with a mutex, so
// concurrent callers cannot interleave a follow-up with another caller's
// original query.
type Session struct {
	id          string
	gate        *clarify.Gate
	retriever   *retriever.Retriever
	generator   domain.Generator
	temperature float64
	log         *zap.Logger

	mu       sync.Mutex
	state    State
	original string
}

// Ask submits a fresh top-level query. When the clarification gate fires,
// the turn carries a clarification question instead of an answer and the
// session waits for a follow-up.
func (s *Session) Ask(ctx context.Context, query string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.original = query
	if question := s.gate.Check(query); question != "" {
		s.state = StateAwaitingClarification
		s.log.Info("clarification requested", zap.String("session", s.id), zap.String("query", query))
		return Turn{Clarification: question}, nil
	}

	turn, err := s.answer(ctx, query, query)
	if err != nil {
		return Turn{}, err
	}
	s.state = StateAwaitingAnswer
	return turn, nil
}

// FollowUp merges a short answer fragment into the stored original query
// and retrieves again. The refined query drives retrieval while the prompt
// still embeds the original question. The original query is never
// overwritten here; a follow-up with no prior Ask uses an empty one.
func (s *Session) FollowUp(ctx context.Context, fragment string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refined := fmt.Sprintf("%s (%s)", s.original, fragment)
	turn, err := s.answer(ctx, refined, s.original)
	if err != nil {
		return Turn{}, err
	}
	s.state = StateResolved
	return turn, nil
}

// Reset clears the conversation context. Calling it on an idle session is a
// no-op.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.original = ""
	s.state = StateIdle
}

// ID returns the caller-visible session identifier.
func (s *Session) ID() string { return s.id }

// State reports the dialogue state for presentation purposes.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OriginalQuery returns the most recent top-level query.
func (s *Session) OriginalQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original
}

func (s *Session) answer(ctx context.Context, retrieveQuery, question string) (Turn, error) {
	bundle, err := s.retriever.Retrieve(ctx, retrieveQuery)
	if err != nil {
		return Turn{}, err
	}
	userPrompt := prompt.Compose(question, bundle.Context, bundle.Quotes)
	text, err := s.generator.Complete(ctx, prompt.System, userPrompt, s.temperature)
	if err != nil {
		// original stays set so the caller may retry the turn
		return Turn{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return Turn{Answer: strings.TrimSpace(text), Sources: bundle.Sources}, nil
}
