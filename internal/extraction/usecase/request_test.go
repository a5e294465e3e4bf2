package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"voice-task-management/internal/extraction"
)

func TestBuildRequest(t *testing.T) {
	uc := newTestUseCase(t, &stubBackend{})

	t.Run("empty utterance", func(t *testing.T) {
		for _, in := range []string{"", "   ", "\n\t"} {
			_, err := uc.buildRequest(extraction.ExtractInput{Utterance: in, ReferenceTime: refTime})
			if !errors.Is(err, extraction.ErrEmptyInput) {
				t.Errorf("buildRequest(%q) error = %v, want ErrEmptyInput", in, err)
			}
		}
	})

	t.Run("anchors on the reference time", func(t *testing.T) {
		req, err := uc.buildRequest(extraction.ExtractInput{Utterance: "  Buy milk tomorrow ", ReferenceTime: refTime})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Utterance != "Buy milk tomorrow" {
			t.Errorf("utterance not trimmed: %q", req.Utterance)
		}
		if req.ContractVersion != uc.contract.Version {
			t.Errorf("contract version = %q", req.ContractVersion)
		}
		for _, want := range []string{"2023-10-27 (Friday)", "Tomorrow is 2023-10-28", "Low, High, Urgent, Critical", "To Do, In Progress, Done"} {
			if !strings.Contains(req.SystemInstruction, want) {
				t.Errorf("system instruction missing %q", want)
			}
		}
		if !strings.Contains(req.UserPrompt, "Buy milk tomorrow") {
			t.Errorf("user prompt missing utterance: %q", req.UserPrompt)
		}

		preq := uc.providerRequest(req)
		if !preq.JSONOutput || preq.Temperature != uc.contract.Temperature || len(preq.Messages) != 1 {
			t.Errorf("unexpected provider request %+v", preq)
		}
	})

	t.Run("zero reference uses now", func(t *testing.T) {
		before := time.Now().Add(-time.Second)
		req, err := uc.buildRequest(extraction.ExtractInput{Utterance: "Buy milk"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.ReferenceTime.Before(before) {
			t.Errorf("reference time %v not defaulted to now", req.ReferenceTime)
		}
	})
}
