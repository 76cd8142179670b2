// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texenv/texenv/internal/config"
	"github.com/texenv/texenv/internal/issue"
)

// newConfigCommand creates the `texenv config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage texenv configuration",
		Long: `Manage texenv configuration.

Configuration is stored in:
  - Linux: ~/.config/texenv/config.cue
  - macOS: ~/Library/Application Support/texenv/config.cue
  - Windows: %APPDATA%\texenv\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}

			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, loadedPath, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := ToolStyle
	valueStyle := SuccessStyle

	fmt.Println(headerStyle.Render("Current Configuration"))
	fmt.Println()

	if loadedPath != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), loadedPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	// Show values
	if cfg.Prefix != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("prefix"), valueStyle.Render(cfg.Prefix.String()))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("prefix"), SubtitleStyle.Render("(auto-detect)"))
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("bundle_dir"), valueStyle.Render(cfg.BundleDir.String()))
	fmt.Printf("%s: %s\n", keyStyle.Render("primary_tool"), valueStyle.Render(cfg.PrimaryTool.String()))
	fmt.Printf("%s: %s\n", keyStyle.Render("bib_tool"), valueStyle.Render(cfg.BibTool.String()))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("compile"))
	if cfg.Compile.ExtraArgs != "" {
		fmt.Printf("  extra_args: %s\n", valueStyle.Render(cfg.Compile.ExtraArgs))
	} else {
		fmt.Printf("  extra_args: %s\n", SubtitleStyle.Render("(none)"))
	}
	fmt.Printf("  interaction: %s\n", valueStyle.Render(cfg.Compile.Interaction.String()))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("search_path"))
	if cfg.SearchPath.TexmfHome != "" {
		fmt.Printf("  texmf_home: %s\n", valueStyle.Render(cfg.SearchPath.TexmfHome.String()))
	} else {
		fmt.Printf("  texmf_home: %s\n", SubtitleStyle.Render("(none)"))
	}
	if len(cfg.SearchPath.TexInputs) == 0 {
		fmt.Printf("  tex_inputs: %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		fmt.Println("  tex_inputs:")
		for _, entry := range cfg.SearchPath.TexInputs {
			fmt.Printf("    - %s\n", valueStyle.Render(entry.String()))
		}
	}
	fmt.Printf("  use_bundle_defaults: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.SearchPath.UseBundleDefaults)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfigFile() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n",
		SuccessStyle.Render("✓"), filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func setConfigValue(ctx context.Context, app *App, key, value string) error {
	cfg, _, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	switch key {
	case "prefix":
		prefix := config.PrefixPath(value)
		if ok, _ := prefix.IsValid(); !ok {
			return fmt.Errorf("invalid prefix: must not be only whitespace")
		}
		cfg.Prefix = prefix

	case "bundle_dir":
		name := config.BundleDirName(value)
		if ok, _ := name.IsValid(); !ok {
			return fmt.Errorf("invalid bundle_dir: must be a bare directory name without path separators")
		}
		cfg.BundleDir = name

	case "primary_tool":
		name := config.ToolName(value)
		if ok, _ := name.IsValid(); !ok {
			return fmt.Errorf("invalid primary_tool: must be a bare tool name without path separators")
		}
		cfg.PrimaryTool = name

	case "bib_tool":
		name := config.ToolName(value)
		if ok, _ := name.IsValid(); !ok {
			return fmt.Errorf("invalid bib_tool: must be a bare tool name without path separators")
		}
		cfg.BibTool = name

	case "compile.extra_args":
		cfg.Compile.ExtraArgs = value
		if _, listErr := cfg.Compile.ExtraArgsList(); listErr != nil {
			return fmt.Errorf("invalid compile.extra_args: %w", listErr)
		}

	case "compile.interaction":
		mode := config.InteractionMode(value)
		if ok, _ := mode.IsValid(); !ok {
			return fmt.Errorf("invalid compile.interaction: must be 'batchmode', 'nonstopmode', 'scrollmode', or 'errorstopmode'")
		}
		cfg.Compile.Interaction = mode

	case "search_path.texmf_home":
		home := config.TexmfPath(value)
		if ok, _ := home.IsValid(); !ok {
			return fmt.Errorf("invalid search_path.texmf_home: must not be only whitespace")
		}
		cfg.SearchPath.TexmfHome = home

	case "search_path.use_bundle_defaults":
		cfg.SearchPath.UseBundleDefaults = value == "true" || value == "1"

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	case "ui.color_scheme":
		scheme := config.ColorScheme(value)
		if ok, _ := scheme.IsValid(); !ok {
			return fmt.Errorf("invalid ui.color_scheme: must be 'auto', 'dark', or 'light'")
		}
		cfg.UI.ColorScheme = scheme

	default:
		validKeys := strings.Join([]string{
			"prefix", "bundle_dir", "primary_tool", "bib_tool",
			"compile.extra_args", "compile.interaction",
			"search_path.texmf_home", "search_path.use_bundle_defaults",
			"ui.verbose", "ui.color_scheme",
		}, ", ")
		return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, validKeys)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}
