package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hrygo/zai/internal/profile"
	"github.com/hrygo/zai/plugin/ai"
	"github.com/hrygo/zai/plugin/ai/assistant"
	"github.com/hrygo/zai/plugin/ai/router"
	"github.com/hrygo/zai/server"
)

var (
	v = profile.NewViper()

	rootCmd = &cobra.Command{
		Use:   "zai",
		Short: "Stateless decision core for the Z AI productivity chat",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if v.GetString("mode") == "dev" {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat API over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			instanceProfile, err := loadProfile()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			s, err := server.NewServer(ctx, instanceProfile)
			if err != nil {
				return errors.Wrap(err, "failed to create server")
			}

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-c
				s.Shutdown(ctx)
				cancel()
			}()

			if err := s.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			return nil
		},
	}

	askCmd = &cobra.Command{
		Use:   "ask <message>",
		Short: "Run one message through the decision core and print the JSON result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instanceProfile, err := loadProfile()
			if err != nil {
				return err
			}

			req := assistant.Request{Message: args[0]}
			for flag, dst := range map[string]*any{"context": &req.Context, "memory": &req.Memory, "planner": &req.Planner} {
				raw, _ := cmd.Flags().GetString(flag)
				if raw == "" {
					continue
				}
				if err := json.Unmarshal([]byte(raw), dst); err != nil {
					return errors.Wrapf(err, "invalid --%s json", flag)
				}
			}

			classifier := router.NewServiceFromConfig(ai.NewConfigFromProfile(instanceProfile), router.NewCentroidCache())
			core, err := assistant.NewService(classifier)
			if err != nil {
				return err
			}

			resp := core.Process(cmd.Context(), req)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(resp)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("neural", "", `embedding intent fallback: "on", "off" or empty for on when CHATBOT_LLM_API_KEY is set`)
	serveCmd.Flags().String("addr", "", "address of server")
	serveCmd.Flags().Int("port", profile.DefaultPort, "port of server")
	askCmd.Flags().String("context", "", "client context hint as JSON")
	askCmd.Flags().String("memory", "", "conversation memory hint as JSON")
	askCmd.Flags().String("planner", "", "external planner frame as JSON")

	for key, flag := range map[string]string{"mode": "mode", "neural.enabled": "neural"} {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
	for _, key := range []string{"addr", "port"} {
		if err := v.BindPFlag(key, serveCmd.Flags().Lookup(key)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(serveCmd, askCmd)
}

func loadProfile() (*profile.Profile, error) {
	p := profile.FromViper(v)
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid profile")
	}
	return p, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
