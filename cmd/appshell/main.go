package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hostkit/appshell"
	"github.com/hostkit/appshell/internal/cliconfig"
	"github.com/hostkit/appshell/pkg/log"
	"github.com/hostkit/appshell/plugins/dirtyguard"
)

const helpDescription = `
Run a headless multi-window host with coordinated lifecycle handling.

Highlights:
  - Cancelable quit with observer vetoes at two checkpoints.
  - Unconditional exit path that bypasses vetoes and destroys windows.
  - Optional dirty-guard: quit is refused while unsaved-work markers exist.
  - Configure via file, APPSHELL_* environment variables, or flags.

Send SIGINT to request a quit, SIGTERM to force an exit.
`

var exampleUsage = strings.TrimSpace(`
  appshell --window main --window inspector
  appshell --config $HOME/.appshell/config.toml --dirty-dir /tmp/drafts
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := log.NewZerologAdapter()

	root := &cobra.Command{
		Use:     "appshell",
		Short:   "Lifecycle coordinator host for multi-window applications",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.appshell/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cliconfig.ApplyFileConfig(&cfg, fc, changed)
			}

			cliconfig.ApplyEnvConfig(&cfg, changed)

			if err := cfg.Validate(); err != nil {
				return err
			}

			leveled := logger.WithLevel(cfg.LogLevel)
			leveled.Info("configuration loaded",
				log.String("app", cfg.AppName),
				log.String("user_data_dir", cfg.UserDataDir),
				log.Int("windows", len(cfg.WindowTitles)))

			opts := []appshell.Option{
				appshell.WithLogger(leveled),
				appshell.WithName(cfg.AppName),
				appshell.WithUserDataDir(cfg.UserDataDir),
			}
			if cfg.AppVersion != "" {
				opts = append(opts, appshell.WithVersion(cfg.AppVersion))
			}
			if cfg.DirtyDir != "" {
				opts = append(opts, dirtyguard.WithDirtyGuard(dirtyguard.Config{
					Dir:     cfg.DirtyDir,
					Pattern: cfg.DirtyPattern,
				}))
			}

			shell, err := appshell.New(opts...)
			if err != nil {
				return fmt.Errorf("create appshell: %w", err)
			}

			for _, title := range cfg.WindowTitles {
				shell.Windows().Add(title, nil)
			}

			// Signals arrive on their own goroutine; marshal them onto the
			// loop. SIGINT asks politely, SIGTERM does not.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				for sig := range sigCh {
					switch sig {
					case syscall.SIGINT:
						shell.Post(shell.Quit)
					case syscall.SIGTERM:
						shell.Post(func() { shell.Exit(0) })
					}
				}
			}()

			info := appshell.LaunchInfo{
				"name":    shell.Name(),
				"version": shell.Version(),
			}
			if cfgFile != "" {
				info["config"] = cfgFile
			}

			code := shell.Run(info)
			leveled.Info("shutdown complete", log.Int("code", code))
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.appshell/config.toml)")
	root.Flags().StringVar(&cfg.AppName, "app-name", cfg.AppName, "application name")
	root.Flags().StringVar(&cfg.AppVersion, "app-version", cfg.AppVersion, "application version override")
	root.Flags().StringVar(&cfg.UserDataDir, "user-data-dir", cfg.UserDataDir, "storage directory created at launch (default: $HOME/.appshell/data)")
	root.Flags().StringVar(&cfg.DirtyDir, "dirty-dir", cfg.DirtyDir, "directory watched for unsaved-work markers (enables the dirty guard)")
	root.Flags().StringVar(&cfg.DirtyPattern, "dirty-pattern", cfg.DirtyPattern, "glob matched against marker file names")
	root.Flags().StringArrayVar(&cfg.WindowTitles, "window", cfg.WindowTitles, "window to open at launch (repeatable)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		logger.Error("appshell", log.Err(err))
		os.Exit(1)
	}
}
