package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zackciesinski-vercel/515-agent/internal/configutil"
	"github.com/zackciesinski-vercel/515-agent/internal/llmutil"
	"github.com/zackciesinski-vercel/515-agent/internal/logutil"
	"github.com/zackciesinski-vercel/515-agent/internal/source/calendar"
	"github.com/zackciesinski-vercel/515-agent/internal/source/granola"
	"github.com/zackciesinski-vercel/515-agent/internal/source/notion"
	slacksource "github.com/zackciesinski-vercel/515-agent/internal/source/slack"
	"github.com/zackciesinski-vercel/515-agent/pipeline"
	"github.com/zackciesinski-vercel/515-agent/publish"
	"github.com/zackciesinski-vercel/515-agent/report"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Collect the week's context and draft the 5:15 report",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			runID := uuid.NewString()
			logger = logger.With("run_id", runID)

			author := configutil.FlagOrViperString(cmd, "author", "report.author_name")
			if strings.TrimSpace(author) == "" {
				return fmt.Errorf("author name not configured (set report.author_name or --author)")
			}

			client, err := llmutil.ClientFromViper()
			if err != nil {
				return fmt.Errorf("llm client: %w", err)
			}

			draft, err := pipeline.Run(cmd.Context(), logger, client, sourcesFromViper(logger), pipeline.Options{
				AuthorName:  author,
				Temperature: viper.GetFloat64("generate.temperature"),
				MaxTokens:   viper.GetInt("generate.max_tokens"),
			})
			if err != nil {
				var genErr *pipeline.GenerationError
				if errors.As(err, &genErr) {
					logger.Error("generation failed", "error", genErr.Err)
				}
				return err
			}

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), report.RenderMarkdown(draft))
				return nil
			}

			location, err := rendererFromViper(cmd, logger).Render(cmd.Context(), draft)
			if err != nil {
				return fmt.Errorf("render report: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "report published: "+location)
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Print the draft to stdout instead of publishing.")
	cmd.Flags().Bool("local", false, "Write a local markdown file even when Notion is configured.")
	cmd.Flags().String("author", "", "Report author name (overrides report.author_name).")

	return cmd
}

// sourcesFromViper wires up every integration with configuration. A
// source stays nil when its keys are absent; the pipeline treats that as
// "not configured" and moves on.
func sourcesFromViper(logger *slog.Logger) pipeline.Sources {
	src := pipeline.Sources{}

	if icsURL := strings.TrimSpace(viper.GetString("calendar.ics_url")); icsURL != "" {
		src.Calendar = calendar.New(icsURL, viper.GetString("calendar.self_email"), logger)
	}

	if botToken := strings.TrimSpace(viper.GetString("slack.bot_token")); botToken != "" {
		channels := viper.GetStringSlice("slack.channels")
		if len(channels) > 0 {
			src.Chat = slacksource.New(botToken, channels, viper.GetString("slack.user_id"), logger)
		}
	}

	if cachePath := strings.TrimSpace(viper.GetString("granola.cache_path")); cachePath != "" {
		src.Notes = granola.New(cachePath, logger)
	}

	notionKey := strings.TrimSpace(viper.GetString("notion.api_key"))
	if notionKey != "" {
		if notesDB := strings.TrimSpace(viper.GetString("notion.notes_database_id")); notesDB != "" {
			src.NotesFallback = notion.NewNotesSource(notionKey, notesDB, logger)
		}
		if reportsDB := strings.TrimSpace(viper.GetString("notion.reports_database_id")); reportsDB != "" {
			src.Prior = notion.NewPriorSource(notionKey, reportsDB, logger)
		}
	}

	return src
}

func rendererFromViper(cmd *cobra.Command, logger *slog.Logger) publish.Renderer {
	local, _ := cmd.Flags().GetBool("local")
	notionKey := strings.TrimSpace(viper.GetString("notion.api_key"))
	reportsDB := strings.TrimSpace(viper.GetString("notion.reports_database_id"))

	if !local && notionKey != "" && reportsDB != "" {
		return publish.NewNotionRenderer(notionKey, reportsDB, logger)
	}
	return publish.NewLocalRenderer(viper.GetString("output.dir"), logger)
}
