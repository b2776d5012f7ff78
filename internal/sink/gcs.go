package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/discovery"
)

// ObjectWriter is the slice of the GCS client the sink needs. It exists so
// tests can substitute an in-memory writer.
type ObjectWriter interface {
	NewWriter(ctx context.Context, object string) io.WriteCloser
}

// gcsBucket adapts *storage.Client to ObjectWriter.
type gcsBucket struct {
	client *storage.Client
	bucket string
}

func (b gcsBucket) NewWriter(ctx context.Context, object string) io.WriteCloser {
	return b.client.Bucket(b.bucket).Object(object).NewWriter(ctx)
}

// GCSSink uploads run output to a Google Cloud Storage bucket, keyed by run
// ID so historical runs remain retrievable.
type GCSSink struct {
	writer ObjectWriter
	bucket string
	prefix string
	logger *zap.Logger
}

// NewGCSSink builds a sink over a live GCS client.
func NewGCSSink(client *storage.Client, bucket, prefix string, logger *zap.Logger) (*GCSSink, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	return newGCSSink(gcsBucket{client: client, bucket: bucket}, bucket, prefix, logger), nil
}

func newGCSSink(writer ObjectWriter, bucket, prefix string, logger *zap.Logger) *GCSSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GCSSink{writer: writer, bucket: bucket, prefix: prefix, logger: logger}
}

// Save uploads the output document and returns its gs:// URI.
func (s *GCSSink) Save(ctx context.Context, out discovery.Output) (string, error) {
	payload, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal output: %w", err)
	}

	object := s.objectName(out.Metadata.RunID)
	w := s.writer.NewWriter(ctx, object)
	if _, err := io.Copy(w, bytes.NewReader(payload)); err != nil {
		closeErr := w.Close()
		if closeErr != nil {
			return "", fmt.Errorf("upload output: %w (close writer: %v)", err, closeErr)
		}
		return "", fmt.Errorf("upload output: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}

	uri := fmt.Sprintf("gs://%s/%s", s.bucket, object)
	s.logger.Info("Results uploaded",
		zap.String("uri", uri),
		zap.Int("startups", len(out.Startups)),
	)
	return uri, nil
}

func (s *GCSSink) objectName(runID string) string {
	if s.prefix != "" {
		return fmt.Sprintf("%s/discovered_startups_%s.json", s.prefix, runID)
	}
	return fmt.Sprintf("discovered_startups_%s.json", runID)
}

var _ discovery.Sink = (*GCSSink)(nil)
