package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/storage"
)

// File extensions written per package.
const (
	MarkdownExt    = ".md"
	VideoScriptExt = ".video.json"
)

// StorageSink files packages into an object store.
type StorageSink struct {
	store *storage.ByteClient
	clock func() time.Time
	log   *logger.Logger
}

// StorageOption configures a StorageSink.
type StorageOption func(*StorageSink)

// WithClock sets the clock used when a draft carries no date.
func WithClock(now func() time.Time) StorageOption {
	return func(s *StorageSink) { s.clock = now }
}

// WithLogger sets the sink logger.
func WithLogger(l *logger.Logger) StorageOption {
	return func(s *StorageSink) { s.log = l }
}

// NewStorageSink creates a sink writing into store.
func NewStorageSink(store storage.Storage, opts ...StorageOption) *StorageSink {
	s := &StorageSink{store: storage.NewByteClient(store), clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrDefault(s.log, "output.storage")
	return s
}

// Name identifies the sink in logs and errors.
func (s *StorageSink) Name() string { return "storage" }

// Emit writes the article body as Markdown and the script as pretty JSON.
// The article is written first; a failure writing the script leaves it in place.
func (s *StorageSink) Emit(ctx context.Context, pkg *content.Package) error {
	if pkg == nil || pkg.Article == nil || pkg.Script == nil {
		return fmt.Errorf("output: package needs both an article and a video script")
	}

	base := ObjectPath(pkg.Article, s.clock())
	mdPath := base + MarkdownExt
	if err := s.store.Put(ctx, mdPath, []byte(pkg.Article.Body)); err != nil {
		return fmt.Errorf("output: write %s: %w", mdPath, err)
	}

	data, err := VideoScriptJSON(pkg.Script)
	if err != nil {
		return fmt.Errorf("output: encode video script: %w", err)
	}
	jsonPath := base + VideoScriptExt
	if err := s.store.Put(ctx, jsonPath, data); err != nil {
		return fmt.Errorf("output: write %s: %w", jsonPath, err)
	}

	s.log.WithContext(ctx).Debug("package written", map[string]interface{}{
		logger.FieldPath:  base,
		logger.FieldTopic: pkg.TopicID(),
	})
	return nil
}

// videoScriptFile is the on-disk script layout.
type videoScriptFile struct {
	Title                 string            `json:"title"`
	Style                 string            `json:"style"`
	TargetDurationSeconds *int              `json:"target_duration_seconds"`
	Language              string            `json:"language"`
	Narration             string            `json:"narration"`
	Segments              []content.Segment `json:"segments"`
}

// VideoScriptJSON renders the script file. Segments is always an array.
func VideoScriptJSON(vs *content.VideoScript) ([]byte, error) {
	f := videoScriptFile{
		Title:                 vs.Title,
		Style:                 vs.Style,
		TargetDurationSeconds: vs.TargetDurationSeconds,
		Language:              vs.Language,
		Narration:             vs.Narration,
		Segments:              vs.Segments,
	}
	if f.Segments == nil {
		f.Segments = []content.Segment{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
