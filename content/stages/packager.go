package stages

import (
	"context"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/pipeline"
)

// NewPackager returns the stage pairing each draft with the script writer's
// output for it.
func NewPackager(writer *ScriptWriter) pipeline.Stage {
	return pipeline.StageOf("packager", func(ctx context.Context, d *content.ArticleDraft) (*content.Package, error) {
		script, err := writer.Transform(ctx, d)
		if err != nil {
			return nil, err
		}
		return &content.Package{Article: d, Script: script}, nil
	})
}
