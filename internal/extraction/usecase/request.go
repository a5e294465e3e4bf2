package usecase

import (
	"fmt"
	"strings"
	"time"

	"voice-task-management/internal/extraction"
	"voice-task-management/internal/extraction/contract"
	"voice-task-management/pkg/datemath"
	"voice-task-management/pkg/llmprovider"
)

// buildRequest renders the contract instructions for one utterance. A zero
// reference time is replaced with the current time.
func (uc *implUseCase) buildRequest(input extraction.ExtractInput) (extraction.Request, error) {
	utterance := strings.TrimSpace(input.Utterance)
	if utterance == "" {
		return extraction.Request{}, extraction.NewError(extraction.ErrEmptyInput, extraction.StageBuild, nil)
	}

	ref := input.ReferenceTime
	if ref.IsZero() {
		ref = uc.dates.Now()
	}

	data := contract.PromptData{
		Utterance:       utterance,
		Today:           ref.Format(datemath.DateLayout),
		Weekday:         ref.Weekday().String(),
		Tomorrow:        ref.AddDate(0, 0, 1).Format(datemath.DateLayout),
		Reference:       ref.Format(time.RFC3339),
		Priorities:      uc.contract.Priority.Values,
		Statuses:        uc.contract.Status.Values,
		DefaultPriority: uc.contract.Priority.Default,
		DefaultStatus:   uc.contract.Status.Default,
	}

	system, err := uc.contract.RenderSystem(data)
	if err != nil {
		return extraction.Request{}, fmt.Errorf("build request: %w", err)
	}
	user, err := uc.contract.RenderUser(data)
	if err != nil {
		return extraction.Request{}, fmt.Errorf("build request: %w", err)
	}

	return extraction.Request{
		Utterance:         utterance,
		ReferenceTime:     ref,
		ContractVersion:   uc.contract.Version,
		SystemInstruction: system,
		UserPrompt:        user,
		Temperature:       uc.contract.Temperature,
	}, nil
}

func (uc *implUseCase) providerRequest(req extraction.Request) *llmprovider.Request {
	return &llmprovider.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          []llmprovider.Message{{Role: "user", Text: req.UserPrompt}},
		Temperature:       req.Temperature,
		MaxTokens:         uc.contract.MaxTokens,
		JSONOutput:        true,
	}
}
