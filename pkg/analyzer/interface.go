package analyzer

import (
	"context"

	"github.com/ccollicutt/roslog/pkg/parser"
)

// LogParser parses one log into a Result.
// Analyzer implements it; commands depend on the interface.
type LogParser interface {
	// Analyze reads the source to the end and returns the corrected result.
	Analyze(ctx context.Context, source parser.LineSource) (*Result, error)
}

var _ LogParser = (*Analyzer)(nil)
