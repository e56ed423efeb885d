package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ttg/internal/config"
	"github.com/javiermolinar/ttg/internal/palette"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  ttg config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runConfigInteractive(path, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)

	reader := bufio.NewReader(in)

	// Ask if user wants to edit
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	cfg.Catalog.Path = promptValue(reader, out, "Catalog path", cfg.Catalog.Path)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.Storage.RetentionDays = promptInt(reader, out, "Retention days", cfg.Storage.RetentionDays)
	cfg.Display.Palette = promptPalette(reader, out, cfg.Display.Palette)
	cfg.Display.Monochrome = promptBool(reader, out, "Monochrome", cfg.Display.Monochrome)
	cfg.Display.Term = promptInt(reader, out, "Term shown first (1 or 2)", cfg.Display.Term)
	cfg.Links.BaseURL = promptValue(reader, out, "Link base URL", cfg.Links.BaseURL)
	cfg.Links.LegacyFallback = promptBool(reader, out, "Look up old short links", cfg.Links.LegacyFallback)
	if cfg.Links.LegacyFallback {
		cfg.Links.LegacyHost = promptValue(reader, out, "Old short link host", cfg.Links.LegacyHost)
	}
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[catalog]")
	fmt.Fprintf(out, "  path            = %s\n", cfg.Catalog.Path)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path         = %s\n", cfg.Storage.DBPath)
	fmt.Fprintf(out, "  retention_days  = %d\n", cfg.Storage.RetentionDays)
	fmt.Fprintln(out, "\n[display]")
	fmt.Fprintf(out, "  palette         = %s\n", cfg.Display.Palette)
	fmt.Fprintf(out, "  monochrome      = %t\n", cfg.Display.Monochrome)
	fmt.Fprintf(out, "  term            = %d\n", cfg.Display.Term)
	fmt.Fprintln(out, "\n[links]")
	fmt.Fprintf(out, "  base_url        = %s\n", cfg.Links.BaseURL)
	fmt.Fprintf(out, "  legacy_fallback = %t\n", cfg.Links.LegacyFallback)
	if cfg.Links.LegacyFallback {
		fmt.Fprintf(out, "  legacy_host     = %s\n", cfg.Links.LegacyHost)
	}
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level           = %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  format          = %s\n", cfg.Log.Format)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptBool(reader *bufio.Reader, out io.Writer, label string, current bool) bool {
	value := promptValue(reader, out, label+" (true/false)", strconv.FormatBool(current))
	b, err := strconv.ParseBool(value)
	if err != nil {
		return current
	}
	return b
}

func promptPalette(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(palette.Available(), ", ")
	label := fmt.Sprintf("Palette (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if palette.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid palette %q. Available: %s\n", value, options)
	}
}
