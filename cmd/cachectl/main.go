// cachectl is an operator tool for the AprovaFácil cache: inspect
// statistics, read and write individual keys, and run bulk pattern
// invalidations against the shared Redis backend.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/aprovafacil/backend-core/pkg/cache"
	"github.com/aprovafacil/backend-core/pkg/config"
	"github.com/aprovafacil/backend-core/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var svc *cache.Service

	root := &cobra.Command{
		Use:           "cachectl",
		Short:         "Operate the AprovaFácil cache backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := logging.Setup(logging.Config{
				Level:  logging.LogLevel(cfg.LogLevel),
				Pretty: cfg.LogPretty,
				Output: os.Stderr,
			})

			// cachectl always talks to the shared Redis backend; a
			// fresh in-process store would have nothing to inspect.
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisURL,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			store := cache.NewRedisStore(cache.RedisConfig{
				Client: client,
				Logger: logger,
			})
			svc = cache.NewService(cache.ServiceConfig{
				Store:      store,
				Namespace:  cfg.Namespace,
				DefaultTTL: cfg.DefaultTTL(),
				Logger:     logger,
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if svc != nil {
				_ = svc.Close()
			}
		},
	}

	root.AddCommand(newStatsCmd(&svc))
	root.AddCommand(newGetCmd(&svc))
	root.AddCommand(newSetCmd(&svc))
	root.AddCommand(newDelCmd(&svc))
	root.AddCommand(newClearCmd(&svc))
	return root
}

func newStatsCmd(svc **cache.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print a cache statistics snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := (*svc).GetStatistics(context.Background())
			out, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newGetCmd(svc **cache.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored under KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value json.RawMessage
			if err := (*svc).Get(context.Background(), args[0], &value); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(value))
			return nil
		},
	}
}

func newSetCmd(svc **cache.Service) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store VALUE (a JSON document) under KEY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value json.RawMessage
			if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
				return fmt.Errorf("value is not valid JSON: %w", err)
			}
			if ttl > 0 {
				return (*svc).SetWithTTL(context.Background(), args[0], value, ttl)
			}
			return (*svc).Set(context.Background(), args[0], value)
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "entry TTL (default: service default)")
	return cmd
}

func newDelCmd(svc **cache.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "del KEY",
		Short: "Remove KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*svc).Delete(context.Background(), args[0])
		},
	}
}

func newClearCmd(svc **cache.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [PATTERN]",
		Short: "Invalidate all keys in the namespace, or only those containing PATTERN",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}
			return (*svc).Clear(context.Background(), pattern)
		},
	}
}
