package usecase

import (
	"context"
	"errors"
	"time"

	"voice-task-management/internal/extraction"
	"voice-task-management/pkg/datemath"
	"voice-task-management/pkg/llmprovider"
)

// Extract runs build -> invoke -> parse -> resolve dates -> validate ->
// split. Any failure returns a zero TaskDraft and an *extraction.Error.
func (uc *implUseCase) Extract(ctx context.Context, input extraction.ExtractInput) (extraction.TaskDraft, error) {
	req, err := uc.buildRequest(input)
	if err != nil {
		return extraction.TaskDraft{}, err
	}

	uc.l.Debugf(ctx, "extraction.usecase.Extract: contract=%s reference=%s utterance_length=%d",
		req.ContractVersion, req.ReferenceTime.Format(time.RFC3339), len(req.Utterance))

	raw, err := uc.invoke(ctx, req, input.Timeout)
	if err != nil {
		uc.l.Warnf(ctx, "extraction.usecase.Extract.invoke: %v", err)
		return extraction.TaskDraft{}, err
	}

	candidate, err := ParseResponse(raw)
	if err != nil {
		uc.l.Warnf(ctx, "extraction.usecase.Extract.ParseResponse: %v raw=%q", err, raw)
		return extraction.TaskDraft{}, err
	}

	if uc.contract.Dates.ResolveRelative {
		uc.resolveDueDate(ctx, candidate, req.ReferenceTime)
	}

	draft, corrections, err := uc.validator.Validate(candidate)
	if err != nil {
		uc.l.Warnf(ctx, "extraction.usecase.Extract.Validate: %v raw=%q", err, raw)
		return extraction.TaskDraft{}, err
	}
	for _, c := range corrections {
		uc.l.Infof(ctx, "extraction.usecase.Extract: corrected %s %v -> %q (%s)", c.Field, c.From, c.To, c.Reason)
	}

	return uc.splitter.Apply(draft), nil
}

type backendResult struct {
	resp *llmprovider.Response
	err  error
}

// invoke calls the backend once, bounded by timeout (or the default). A
// result that arrives after the deadline or a cancellation is discarded.
func (uc *implUseCase) invoke(ctx context.Context, req extraction.Request, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = uc.timeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so the goroutine never blocks once nobody is listening.
	results := make(chan backendResult, 1)
	preq := uc.providerRequest(req)
	go func() {
		resp, err := uc.backend.GenerateContent(callCtx, preq)
		results <- backendResult{resp: resp, err: err}
	}()

	select {
	case <-callCtx.Done():
		return "", contextError(ctx, callCtx)
	case r := <-results:
		if r.err != nil {
			if callCtx.Err() != nil {
				return "", contextError(ctx, callCtx)
			}
			if errors.Is(r.err, llmprovider.ErrProviderTimeout) {
				return "", extraction.NewError(extraction.ErrBackendTimeout, extraction.StageInvoke, r.err)
			}
			return "", extraction.NewError(extraction.ErrBackendUnavailable, extraction.StageInvoke, r.err)
		}
		if r.resp == nil {
			return "", extraction.NewError(extraction.ErrBackendUnavailable, extraction.StageInvoke,
				errors.New("backend returned no response"))
		}
		return r.resp.Text, nil
	}
}

// contextError maps a finished call context to a pipeline error: caller
// cancellation is ErrBackendUnavailable, any deadline is ErrBackendTimeout.
func contextError(parent, call context.Context) error {
	if errors.Is(parent.Err(), context.Canceled) {
		return extraction.NewError(extraction.ErrBackendUnavailable, extraction.StageInvoke, context.Canceled)
	}
	return extraction.NewError(extraction.ErrBackendTimeout, extraction.StageInvoke, call.Err())
}

// resolveDueDate rewrites a relative dueDate such as "tomorrow" into a
// calendar date. Unresolvable values are left for the validator to drop.
func (uc *implUseCase) resolveDueDate(ctx context.Context, c extraction.Candidate, ref time.Time) {
	raw, ok := c[fieldDueDate].(string)
	if !ok || raw == "" || datemath.IsCanonical(raw) {
		return
	}
	if resolved, ok := uc.dates.Resolve(raw, ref); ok {
		uc.l.Infof(ctx, "extraction.usecase.Extract: resolved dueDate %q -> %s", raw, resolved)
		c[fieldDueDate] = resolved
	}
}
