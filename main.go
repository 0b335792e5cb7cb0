package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"productivity/config"
	"productivity/model"
	"productivity/parser"
	"productivity/usecase"
	"productivity/utils"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "productivity",
		Short:        "Capture, schedule and track personal tasks",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "path to a YAML config file")

	load := func() (config.Config, error) {
		return config.Load(configPath)
	}

	root.AddCommand(
		newServeCmd(load),
		newAddCmd(load),
		newDumpCmd(load),
		newParseCmd(load),
		newSeedCmd(load),
		newTokenCmd(load),
	)
	return root
}

type configLoader func() (config.Config, error)

// withApp loads config, wires the app and closes it after fn returns.
func withApp(cmd *cobra.Command, load configLoader, fn func(ctx context.Context, a *app) error) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	log := utils.NewLoggerTo(cmd.ErrOrStderr(), cfg.LogLevel)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close(context.Background())
	return fn(ctx, a)
}

func newServeCmd(load configLoader) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, load, func(_ context.Context, a *app) error {
				return serve(a, seed)
			})
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "load the seed file when the store is empty")
	return cmd
}

func newAddCmd(load configLoader) *cobra.Command {
	var tags, status string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Quick add one task from free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app) error {
				task, err := a.service.QuickAdd(ctx, usecase.QuickAddInput{
					Text:   strings.Join(args, " "),
					Tags:   tags,
					Status: model.Status(status),
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), task)
			})
		},
	}
	cmd.Flags().StringVar(&tags, "tags", "", "extra tags, comma or semicolon separated")
	cmd.Flags().StringVar(&status, "status", "", "initial status: todo, in_progress or done")
	return cmd
}

func newDumpCmd(load configLoader) *cobra.Command {
	var file, tags, status string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Bulk add one task per line from a file or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			text, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			return withApp(cmd, load, func(ctx context.Context, a *app) error {
				tasks, err := a.service.BulkAdd(ctx, usecase.BulkAddInput{
					Text:   string(text),
					Tags:   tags,
					Status: model.Status(status),
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), tasks)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file to read, - or empty for stdin")
	cmd.Flags().StringVar(&tags, "tags", "", "tags shared by every task")
	cmd.Flags().StringVar(&status, "status", "", "status shared by every task")
	return cmd
}

func newParseCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Show what the capture parser extracts, without saving",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			clock, err := cfg.Clock()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), parser.Parse(strings.Join(args, " "), clock()))
		},
	}
}

func newSeedCmd(load configLoader) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load tasks from a seed file, or the bundled sample",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app) error {
				path := file
				if path == "" {
					path = a.cfg.SeedFile
				}
				created, err := applySeed(ctx, a, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d tasks created\n", created)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed YAML file (defaults to SEED_FILE, then the bundled sample)")
	return cmd
}

func newTokenCmd(load configLoader) *cobra.Command {
	var subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API bearer token signed with JWT_SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if ttl == 0 {
				ttl = cfg.JWTExpirationTime
			}
			token, err := utils.GenerateAccessToken(cfg.JWTSecretKey, subject, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "owner", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_EXPIRATION_TIME)")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
