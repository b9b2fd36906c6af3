package cmd

import (
	"context"
	"log/slog"

	"github.com/mrclmr/w2c/internal/config"
	"github.com/mrclmr/w2c/internal/cpp"
	"github.com/mrclmr/w2c/internal/sample"
)

// run is the whole pipeline: load and validate every wav file, then
// render the artifacts. Strictly sequential, every failure aborts
// before anything is published.
func run(ctx context.Context, cfg *config.Config, audioDir, outDir string) error {
	r, err := sample.Load(ctx, audioDir)
	if err != nil {
		return err
	}

	slog.Info("decoded", "files", len(r.Sets), "bytes", r.TotalBytes)

	emitter, err := cpp.NewEmitter(cfg, outDir)
	if err != nil {
		return err
	}
	return emitter.Emit(ctx, r)
}
