package main

import (
	"time"

	"github.com/spf13/viper"
)

func initViperDefaults() {
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.endpoint", "")
	viper.SetDefault("llm.model", "gpt-4o")
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.request_timeout", 90*time.Second)

	viper.SetDefault("report.author_name", "")

	viper.SetDefault("generate.temperature", 0.3)
	viper.SetDefault("generate.max_tokens", 1500)

	viper.SetDefault("calendar.ics_url", "")
	viper.SetDefault("calendar.self_email", "")

	viper.SetDefault("slack.bot_token", "")
	viper.SetDefault("slack.channels", []string{})
	viper.SetDefault("slack.user_id", "")

	viper.SetDefault("granola.cache_path", "~/Library/Application Support/Granola/cache-v3.json")

	viper.SetDefault("notion.api_key", "")
	viper.SetDefault("notion.notes_database_id", "")
	viper.SetDefault("notion.reports_database_id", "")

	viper.SetDefault("output.dir", "~/.fifteen/reports")
}
