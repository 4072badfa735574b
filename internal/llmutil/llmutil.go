package llmutil

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/zackciesinski-vercel/515-agent/internal/llmconfig"
	"github.com/zackciesinski-vercel/515-agent/llm"
	langchainProvider "github.com/zackciesinski-vercel/515-agent/providers/langchain"
)

type ConfigReader interface {
	GetString(string) string
	GetDuration(string) time.Duration
}

func ClientConfigFromReader(r ConfigReader) llmconfig.ClientConfig {
	if r == nil {
		return llmconfig.ClientConfig{}
	}
	return llmconfig.ClientConfig{
		Provider:       strings.TrimSpace(r.GetString("llm.provider")),
		Endpoint:       strings.TrimSpace(r.GetString("llm.endpoint")),
		APIKey:         strings.TrimSpace(r.GetString("llm.api_key")),
		Model:          strings.TrimSpace(r.GetString("llm.model")),
		RequestTimeout: r.GetDuration("llm.request_timeout"),
	}
}

func ClientConfigFromViper() llmconfig.ClientConfig {
	return ClientConfigFromReader(viper.GetViper())
}

func ClientFromConfig(cfg llmconfig.ClientConfig) (llm.Client, error) {
	return langchainProvider.New(langchainProvider.Config{
		Provider:       cfg.Provider,
		Endpoint:       cfg.Endpoint,
		APIKey:         cfg.APIKey,
		Model:          cfg.Model,
		RequestTimeout: cfg.RequestTimeout,
	})
}

func ClientFromViper() (llm.Client, error) {
	return ClientFromConfig(ClientConfigFromViper())
}
