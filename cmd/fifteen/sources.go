package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zackciesinski-vercel/515-agent/internal/clifmt"
	"github.com/zackciesinski-vercel/515-agent/internal/pathutil"
)

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Show which report sources are configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			clifmt.PrintNameDetailTable(cmd.OutOrStdout(), clifmt.NameDetailTableOptions{
				Title: "Sources",
				Rows: []clifmt.NameDetailRow{
					{Name: "calendar", Detail: sourceDetail(viper.GetString("calendar.ics_url") != "", describeICS())},
					{Name: "slack", Detail: sourceDetail(slackConfigured(), describeSlack())},
					{Name: "granola", Detail: sourceDetail(viper.GetString("granola.cache_path") != "", describeGranola())},
					{Name: "notion-notes", Detail: sourceDetail(notionNotesConfigured(), "notes fallback database")},
					{Name: "notion-reports", Detail: sourceDetail(notionReportsConfigured(), "prior reports and publishing")},
					{Name: "llm", Detail: sourceDetail(viper.GetString("llm.api_key") != "", describeLLM())},
				},
			})
			return nil
		},
	}
}

func sourceDetail(configured bool, detail string) string {
	if !configured {
		return ""
	}
	return detail
}

func describeICS() string {
	url := viper.GetString("calendar.ics_url")
	if len(url) > 60 {
		url = url[:60] + "…"
	}
	return url
}

func slackConfigured() bool {
	return viper.GetString("slack.bot_token") != "" && len(viper.GetStringSlice("slack.channels")) > 0
}

func describeSlack() string {
	return fmt.Sprintf("%d channels", len(viper.GetStringSlice("slack.channels")))
}

func describeGranola() string {
	return pathutil.ExpandHomePath(viper.GetString("granola.cache_path"))
}

func notionNotesConfigured() bool {
	return viper.GetString("notion.api_key") != "" && viper.GetString("notion.notes_database_id") != ""
}

func notionReportsConfigured() bool {
	return viper.GetString("notion.api_key") != "" && viper.GetString("notion.reports_database_id") != ""
}

func describeLLM() string {
	return strings.TrimSpace(viper.GetString("llm.provider") + " " + viper.GetString("llm.model"))
}
