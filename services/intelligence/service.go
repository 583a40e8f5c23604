package intelligence

import (
	"context"

	"go.uber.org/zap"
)

// maxAttempts caps the total number of model attempts per turn, regardless of
// chain length.
const maxAttempts = 3

// DefaultCompletionService walks the ordered model chain until one attempt
// succeeds, the attempt cap is hit, or a non-retryable failure is classified.
type DefaultCompletionService struct {
	invoker ModelInvoker
	chain   []string
	logger  *zap.Logger
}

// NewDefaultCompletionService builds the chain-walking completion service.
// The chain is the default model followed by the configured fallbacks.
func NewDefaultCompletionService(invoker ModelInvoker, chain []string, logger *zap.Logger) *DefaultCompletionService {
	return &DefaultCompletionService{invoker: invoker, chain: chain, logger: logger}
}

// Complete obtains the next model turn, falling back across the chain.
func (s *DefaultCompletionService) Complete(ctx context.Context, req CompletionRequest) (*ModelTurn, error) {
	return s.complete(ctx, req, func(ctx context.Context, model string) (*ModelTurn, error) {
		return s.invoker.Invoke(ctx, model, req)
	})
}

// CompleteStream behaves like Complete but delivers text deltas through emit.
// A tool invocation detected mid-stream is still returned as one atomic unit.
func (s *DefaultCompletionService) CompleteStream(ctx context.Context, req CompletionRequest, emit StreamFunc) (*ModelTurn, error) {
	return s.complete(ctx, req, func(ctx context.Context, model string) (*ModelTurn, error) {
		return s.invoker.InvokeStream(ctx, model, req, emit)
	})
}

func (s *DefaultCompletionService) complete(ctx context.Context, req CompletionRequest, attempt func(context.Context, string) (*ModelTurn, error)) (*ModelTurn, error) {
	attempts := 0
	var lastErr error

	for i, model := range s.chain {
		if attempts >= maxAttempts {
			break
		}
		attempts++

		turn, err := attempt(ctx, model)
		if err == nil {
			turn.Model = model
			turn.Fallbacks = i
			if i > 0 {
				s.logger.Info("completion succeeded after fallback",
					zap.String("model", model), zap.Int("fallbacks", i))
			}
			return turn, nil
		}

		merr := Classify(model, err)
		s.logger.Warn("model attempt failed",
			zap.String("model", model),
			zap.String("type", string(merr.Type)),
			zap.Bool("retryable", merr.Retryable),
			zap.Error(err))
		if !merr.Retryable {
			return nil, merr
		}
		lastErr = merr
	}

	return nil, &AllModelsFailedError{Attempts: attempts, Last: lastErr}
}
