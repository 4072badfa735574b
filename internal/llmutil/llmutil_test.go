package llmutil

import (
	"testing"
	"time"
)

type fakeReader struct {
	strings   map[string]string
	durations map[string]time.Duration
}

func (f fakeReader) GetString(key string) string          { return f.strings[key] }
func (f fakeReader) GetDuration(key string) time.Duration { return f.durations[key] }

func TestClientConfigFromReader(t *testing.T) {
	t.Parallel()

	reader := fakeReader{
		strings: map[string]string{
			"llm.provider": " openai ",
			"llm.endpoint": "https://api.openai.com/v1",
			"llm.api_key":  "sk-test\n",
			"llm.model":    "gpt-4o",
		},
		durations: map[string]time.Duration{
			"llm.request_timeout": 45 * time.Second,
		},
	}

	cfg := ClientConfigFromReader(reader)
	if cfg.Provider != "openai" {
		t.Fatalf("Provider = %q, want trimmed openai", cfg.Provider)
	}
	if cfg.APIKey != "sk-test" {
		t.Fatalf("APIKey = %q, want trimmed sk-test", cfg.APIKey)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
}

func TestClientConfigFromReaderNil(t *testing.T) {
	t.Parallel()

	cfg := ClientConfigFromReader(nil)
	if cfg.Provider != "" || cfg.RequestTimeout != 0 {
		t.Fatalf("nil reader config = %+v, want zero value", cfg)
	}
}

func TestClientFromConfigUnknownProvider(t *testing.T) {
	t.Parallel()

	if _, err := ClientFromConfig(ClientConfigFromReader(fakeReader{
		strings: map[string]string{"llm.provider": "mystery"},
	})); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
