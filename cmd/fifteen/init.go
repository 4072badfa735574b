package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zackciesinski-vercel/515-agent/assets"
	"github.com/zackciesinski-vercel/515-agent/internal/pathutil"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Initialize config.yaml in ~/.fifteen (or the given dir)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "~/.fifteen/"
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				dir = args[0]
			}
			dir = pathutil.ExpandHomePath(dir)
			if strings.TrimSpace(dir) == "" {
				return fmt.Errorf("invalid dir")
			}
			dir = filepath.Clean(dir)

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			cfgPath := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(cfgPath); err == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warn: config already exists, skipping: %s\n", cfgPath)
				return nil
			}

			skipPrompts, _ := cmd.Flags().GetBool("yes")
			setup, err := maybeCollectInitConfigSetup(cmd, skipPrompts)
			if err != nil {
				return err
			}

			cfgBody, err := loadConfigExample()
			if err != nil {
				return err
			}
			cfgBody = applyInitConfigSetupOverrides(cfgBody, setup)

			if err := os.WriteFile(cfgPath, []byte(cfgBody), 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", dir)
			return nil
		},
	}

	cmd.Flags().Bool("yes", false, "Skip interactive prompts and write the default template.")

	return cmd
}

func loadConfigExample() (string, error) {
	data, err := assets.ConfigFS.ReadFile("config/config.example.yaml")
	if err != nil {
		return "", fmt.Errorf("read embedded config.example.yaml: %w", err)
	}
	return string(data), nil
}
