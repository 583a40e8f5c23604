package intelligence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubInvoker answers each attempt from a scripted queue: an entry is either a
// turn or an error.
type stubInvoker struct {
	turns  []*ModelTurn
	errs   []error
	models []string
}

func (s *stubInvoker) next(model string) (*ModelTurn, error) {
	s.models = append(s.models, model)
	i := len(s.models) - 1
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.turns) {
		return s.turns[i], nil
	}
	return nil, errors.New("unscripted attempt")
}

func (s *stubInvoker) Invoke(_ context.Context, model string, _ CompletionRequest) (*ModelTurn, error) {
	return s.next(model)
}

func (s *stubInvoker) InvokeStream(_ context.Context, model string, _ CompletionRequest, emit StreamFunc) (*ModelTurn, error) {
	turn, err := s.next(model)
	if err == nil && turn.Text != "" {
		emit(turn.Text)
	}
	return turn, err
}

var testChain = []string{"models/alpha", "models/beta", "models/gamma"}

func TestCompleteFirstModelSucceeds(t *testing.T) {
	inv := &stubInvoker{turns: []*ModelTurn{{Text: "hello"}}}
	svc := NewDefaultCompletionService(inv, testChain, zap.NewNop())

	turn, err := svc.Complete(context.Background(), CompletionRequest{Input: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello", turn.Text)
	assert.Equal(t, "models/alpha", turn.Model)
	assert.Zero(t, turn.Fallbacks)
	assert.Equal(t, []string{"models/alpha"}, inv.models)
}

func TestCompleteFallsBackOnRetryableErrors(t *testing.T) {
	inv := &stubInvoker{
		errs:  []error{errors.New("rate limit hit"), errors.New("internal"), nil},
		turns: []*ModelTurn{nil, nil, {Text: "third time lucky"}},
	}
	svc := NewDefaultCompletionService(inv, testChain, zap.NewNop())

	turn, err := svc.Complete(context.Background(), CompletionRequest{Input: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "models/gamma", turn.Model)
	assert.Equal(t, 2, turn.Fallbacks)
	assert.Equal(t, testChain, inv.models)
}

func TestCompleteAbortsOnNonRetryableError(t *testing.T) {
	inv := &stubInvoker{errs: []error{errors.New("invalid api key")}}
	svc := NewDefaultCompletionService(inv, testChain, zap.NewNop())

	_, err := svc.Complete(context.Background(), CompletionRequest{Input: "hi"})
	require.Error(t, err)

	var merr *ModelError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, ErrTypeAuthentication, merr.Type)
	assert.False(t, merr.Retryable)
	assert.Len(t, inv.models, 1, "must not try further models on an auth failure")
}

func TestCompleteExhaustsChain(t *testing.T) {
	inv := &stubInvoker{
		errs: []error{errors.New("quota"), errors.New("quota"), errors.New("quota")},
	}
	svc := NewDefaultCompletionService(inv, testChain, zap.NewNop())

	_, err := svc.Complete(context.Background(), CompletionRequest{Input: "hi"})
	require.Error(t, err)

	var afe *AllModelsFailedError
	require.ErrorAs(t, err, &afe)
	assert.Equal(t, 3, afe.Attempts)
	assert.Len(t, inv.models, 3)
}

func TestCompleteStreamEmitsAndFallsBack(t *testing.T) {
	inv := &stubInvoker{
		errs:  []error{errors.New("rate limit"), nil},
		turns: []*ModelTurn{nil, {Text: "streamed reply"}},
	}
	svc := NewDefaultCompletionService(inv, testChain, zap.NewNop())

	var chunks []string
	turn, err := svc.CompleteStream(context.Background(), CompletionRequest{Input: "hi"}, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, turn.Fallbacks)
	assert.Equal(t, []string{"streamed reply"}, chunks)
}
