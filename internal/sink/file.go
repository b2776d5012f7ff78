package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

// FileSink writes run output as pretty-printed JSON to a fixed path.
type FileSink struct {
	path   string
	logger *zap.Logger
}

// NewFileSink returns a sink writing to path, creating parent directories as
// needed.
func NewFileSink(path string, logger *zap.Logger) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	return &FileSink{path: path, logger: logger}, nil
}

// Save writes the output document and returns its path.
func (s *FileSink) Save(ctx context.Context, out discovery.Output) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context canceled: %w", err)
	}
	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal output: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return "", fmt.Errorf("write output %s: %w", s.path, err)
	}
	s.logger.Info("Results saved",
		zap.String("path", s.path),
		zap.Int("startups", len(out.Startups)),
	)
	return s.path, nil
}

var _ discovery.Sink = (*FileSink)(nil)
