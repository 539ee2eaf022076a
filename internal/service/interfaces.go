package service

import (
	"context"

	"github.com/hkhalid/butrack/internal/domain"
	"github.com/hkhalid/butrack/internal/triage"
)

// RunService executes one full tracker run: bootstrap, discovery, the
// parallel fetch, parsing, and aggregation.
type RunService interface {
	Run(ctx context.Context, creds *domain.Credentials) (*triage.Result, error)
}
