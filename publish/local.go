package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zackciesinski-vercel/515-agent/report"
)

// LocalRenderer writes the report as a markdown file with YAML
// frontmatter, for workflows that keep reports in a repo or notes vault.
type LocalRenderer struct {
	dir    string
	logger *slog.Logger
}

func NewLocalRenderer(dir string, logger *slog.Logger) *LocalRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalRenderer{dir: dir, logger: logger}
}

type frontmatter struct {
	Date      string `yaml:"date"`
	Week      string `yaml:"week"`
	Generated string `yaml:"generated"`
}

func (r *LocalRenderer) Render(ctx context.Context, draft report.DraftReport) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	meta, err := yaml.Marshal(frontmatter{
		Date:      draft.DateLabel,
		Week:      draft.WeekLabel,
		Generated: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	content := "---\n" + string(meta) + "---\n\n" + report.RenderMarkdown(draft)
	path := filepath.Join(r.dir, "515-"+draft.DateLabel+".md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}

	r.logger.Info("report written", "path", path)
	return path, nil
}
