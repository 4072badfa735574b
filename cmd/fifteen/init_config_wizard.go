package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type initConfigSetup struct {
	AuthorName string

	Provider string
	Endpoint string
	Model    string
	APIKey   string

	ICSURL    string
	SelfEmail string

	ConfigureSlack bool
	SlackBotToken  string
	SlackChannels  []string
	SlackUserID    string

	NotionAPIKey      string
	NotesDatabaseID   string
	ReportsDatabaseID string
}

func maybeCollectInitConfigSetup(cmd *cobra.Command, skipPrompts bool) (*initConfigSetup, error) {
	if skipPrompts {
		return nil, nil
	}
	if !supportsInteractivePrompts(cmd) {
		fmt.Fprintln(cmd.ErrOrStderr(), "warn: non-interactive mode detected, using default config template")
		return nil, nil
	}
	return runInitConfigSetupWizard(cmd.InOrStdin(), cmd.OutOrStdout())
}

func supportsInteractivePrompts(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	inFile, okIn := cmd.InOrStdin().(*os.File)
	outFile, okOut := cmd.OutOrStdout().(*os.File)
	if !okIn || !okOut {
		return false
	}
	return term.IsTerminal(int(inFile.Fd())) && term.IsTerminal(int(outFile.Fd()))
}

func runInitConfigSetupWizard(in io.Reader, out io.Writer) (*initConfigSetup, error) {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Starting interactive config setup.")

	setup := &initConfigSetup{}
	var err error

	setup.AuthorName, err = promptRequiredLine(reader, out, "Your full name (as it appears in meeting invites)")
	if err != nil {
		return nil, err
	}

	setup.Provider, err = promptChoice(reader, out, "Select llm provider", []string{"openai", "anthropic", "ollama"}, "openai")
	if err != nil {
		return nil, err
	}
	setup.Endpoint, err = promptLineWithDefault(reader, out, "LLM endpoint", defaultEndpointForProvider(setup.Provider))
	if err != nil {
		return nil, err
	}
	if setup.Provider != "ollama" {
		setup.APIKey, err = promptRequiredLine(reader, out, "LLM api_key")
		if err != nil {
			return nil, err
		}
	}
	setup.Model, err = promptRequiredLine(reader, out, "LLM model")
	if err != nil {
		return nil, err
	}

	setup.ICSURL, err = promptLineWithDefault(reader, out, "Calendar ICS url (empty to skip)", "")
	if err != nil {
		return nil, err
	}
	if setup.ICSURL != "" {
		setup.SelfEmail, err = promptLineWithDefault(reader, out, "Your calendar email (for RSVP detection)", "")
		if err != nil {
			return nil, err
		}
	}

	setup.ConfigureSlack, err = promptYesNo(reader, out, "Configure Slack now?", false)
	if err != nil {
		return nil, err
	}
	if setup.ConfigureSlack {
		setup.SlackBotToken, err = promptRequiredLine(reader, out, "Slack bot_token")
		if err != nil {
			return nil, err
		}
		channelsRaw, err := promptRequiredLine(reader, out, "Slack channel IDs (comma-separated)")
		if err != nil {
			return nil, err
		}
		setup.SlackChannels = splitCommaList(channelsRaw)
		setup.SlackUserID, err = promptLineWithDefault(reader, out, "Your Slack user ID (empty for all messages)", "")
		if err != nil {
			return nil, err
		}
	}

	configureNotion, err := promptYesNo(reader, out, "Configure Notion now?", false)
	if err != nil {
		return nil, err
	}
	if configureNotion {
		setup.NotionAPIKey, err = promptRequiredLine(reader, out, "Notion api_key")
		if err != nil {
			return nil, err
		}
		setup.NotesDatabaseID, err = promptLineWithDefault(reader, out, "Notion notes database ID (empty to skip)", "")
		if err != nil {
			return nil, err
		}
		setup.ReportsDatabaseID, err = promptLineWithDefault(reader, out, "Notion reports database ID (empty to skip)", "")
		if err != nil {
			return nil, err
		}
	}

	fmt.Fprintln(out, "Interactive config setup captured.")
	return setup, nil
}

func defaultEndpointForProvider(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "anthropic":
		return "https://api.anthropic.com"
	case "ollama":
		return "http://localhost:11434"
	default:
		return "https://api.openai.com/v1"
	}
}

func splitCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func promptRequiredLine(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	for {
		v, err := promptLineWithDefault(reader, out, label, "")
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
		fmt.Fprintln(out, "Value cannot be empty. Please try again.")
	}
}

func promptLineWithDefault(reader *bufio.Reader, out io.Writer, label string, defaultValue string) (string, error) {
	prompt := label + ": "
	if strings.TrimSpace(defaultValue) != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, defaultValue)
	}
	fmt.Fprint(out, prompt)
	line, err := readTrimmedLine(reader)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) == "" {
		return strings.TrimSpace(defaultValue), nil
	}
	return strings.TrimSpace(line), nil
}

func promptChoice(reader *bufio.Reader, out io.Writer, label string, options []string, defaultValue string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options for %s", label)
	}
	joined := strings.Join(options, "/")
	for {
		fmt.Fprintf(out, "%s (%s) [%s]: ", label, joined, defaultValue)
		raw, err := readTrimmedLine(reader)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(raw) == "" {
			return strings.TrimSpace(defaultValue), nil
		}

		if idx, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			if idx >= 1 && idx <= len(options) {
				return options[idx-1], nil
			}
		}

		lower := strings.ToLower(strings.TrimSpace(raw))
		for _, opt := range options {
			if lower == strings.ToLower(strings.TrimSpace(opt)) {
				return strings.TrimSpace(opt), nil
			}
		}
		fmt.Fprintf(out, "Invalid choice %q. Use one of: %s\n", raw, joined)
	}
}

func promptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	defaultLabel := "y/N"
	if defaultYes {
		defaultLabel = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, defaultLabel)
		raw, err := readTrimmedLine(reader)
		if err != nil {
			return false, err
		}
		if strings.TrimSpace(raw) == "" {
			return defaultYes, nil
		}
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(out, "Invalid choice. Please enter y or n.")
		}
	}
}

func readTrimmedLine(reader *bufio.Reader) (string, error) {
	if reader == nil {
		return "", fmt.Errorf("nil input reader")
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			line = strings.TrimSpace(line)
			if line != "" {
				return line, nil
			}
			return "", fmt.Errorf("input closed")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func applyInitConfigSetupOverrides(cfg string, setup *initConfigSetup) string {
	if setup == nil || strings.TrimSpace(cfg) == "" {
		return cfg
	}

	cfg = replaceConfigLine(cfg, `  author_name: ""`, `  author_name: `+yamlQuotedScalar(setup.AuthorName))

	cfg = replaceConfigLine(cfg, "  provider: openai", "  provider: "+strings.ToLower(strings.TrimSpace(setup.Provider)))
	cfg = replaceConfigLine(cfg, `  endpoint: ""`, `  endpoint: `+yamlQuotedScalar(setup.Endpoint))
	cfg = replaceConfigLine(cfg, `  model: "gpt-4o"`, `  model: `+yamlQuotedScalar(setup.Model))
	cfg = replaceConfigLine(cfg, `  api_key: "" # or set via FIFTEEN_LLM_API_KEY`, `  api_key: `+yamlQuotedScalar(setup.APIKey)+` # or set via FIFTEEN_LLM_API_KEY`)

	cfg = replaceConfigLine(cfg, `  ics_url: ""`, `  ics_url: `+yamlQuotedScalar(setup.ICSURL))
	cfg = replaceConfigLine(cfg, `  self_email: ""`, `  self_email: `+yamlQuotedScalar(setup.SelfEmail))

	if setup.ConfigureSlack {
		cfg = replaceConfigLine(cfg, `  bot_token: ""`, `  bot_token: `+yamlQuotedScalar(setup.SlackBotToken))
		cfg = replaceConfigLine(cfg, `  channels: []`, `  channels: `+yamlQuotedList(setup.SlackChannels))
		cfg = replaceConfigLine(cfg, `  user_id: ""`, `  user_id: `+yamlQuotedScalar(setup.SlackUserID))
	}

	if setup.NotionAPIKey != "" {
		cfg = replaceConfigLine(cfg, `  api_key: ""`, `  api_key: `+yamlQuotedScalar(setup.NotionAPIKey))
		cfg = replaceConfigLine(cfg, `  notes_database_id: ""`, `  notes_database_id: `+yamlQuotedScalar(setup.NotesDatabaseID))
		cfg = replaceConfigLine(cfg, `  reports_database_id: ""`, `  reports_database_id: `+yamlQuotedScalar(setup.ReportsDatabaseID))
	}

	return cfg
}

func replaceConfigLine(cfg string, from string, to string) string {
	if strings.TrimSpace(cfg) == "" || strings.TrimSpace(from) == "" {
		return cfg
	}
	return strings.Replace(cfg, from, to, 1)
}

func yamlQuotedScalar(v string) string {
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "\"", "\\\"")
	v = strings.ReplaceAll(v, "\n", "\\n")
	return `"` + v + `"`
}

func yamlQuotedList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, yamlQuotedScalar(v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
