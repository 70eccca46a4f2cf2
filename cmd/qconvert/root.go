package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/JonMunkholm/questionnaire/internal/config"
	"github.com/JonMunkholm/questionnaire/internal/core"
	"github.com/JonMunkholm/questionnaire/internal/logging"
	"github.com/JonMunkholm/questionnaire/internal/remote"
	"github.com/spf13/cobra"
)

// options holds the flag values shared by the subcommands. Environment
// settings are the defaults; flags override them.
type options struct {
	cfg *config.Config

	logLevel      string
	endpoint      string
	timeout       time.Duration
	minConfidence int
	compact       bool
	output        string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "qconvert",
		Short:         "Convert survey CSV files to questionnaire documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg

			level := cfg.Logging.Level
			if cmd.Flags().Changed("log-level") {
				level = opts.logLevel
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), level, cfg.Logging.Format))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(newConvertCmd(opts), newSubmitCmd(opts))
	return root
}

func newConvertCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file.csv>",
		Short: "Print the questionnaire generated from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			minConfidence := opts.cfg.Upload.MinConfidence
			if cmd.Flags().Changed("min-confidence") {
				minConfidence = opts.minConfidence
			}
			converter := core.NewConverter(
				core.WithDetector(core.NewChardetDetector(minConfidence)),
			)

			result, err := converter.Convert(cmd.Context(), raw)
			if err != nil {
				return userError(err)
			}

			out := result.Pretty
			if opts.compact {
				out = result.Compact
			}
			if opts.output != "" {
				return os.WriteFile(opts.output, []byte(out+"\n"), 0o644)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().IntVar(&opts.minConfidence, "min-confidence", 0, "reject encoding guesses below this confidence (0-100)")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "print the document on one line")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the document to a file instead of stdout")
	return cmd
}

func newSubmitCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <file.json>",
		Short: "Post a questionnaire document to the remote repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			endpoint := opts.cfg.Remote.EndpointURL
			if cmd.Flags().Changed("endpoint") {
				endpoint = opts.endpoint
			}
			timeout := opts.cfg.Remote.Timeout
			if cmd.Flags().Changed("timeout") {
				timeout = opts.timeout
			}

			client := remote.NewClient(endpoint, remote.WithTimeout(timeout))
			resp, err := client.Submit(cmd.Context(), string(payload))
			if err != nil {
				return userError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "HTTP %d", resp.StatusCode)
			if resp.Location != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " %s", resp.Location)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if resp.Body != "" {
				fmt.Fprintln(cmd.OutOrStdout(), resp.Body)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", config.DefaultEndpointURL, "questionnaire repository URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "submission timeout")
	return cmd
}

// userError prefixes err with its user message and code, keeping the
// repository body for rejected submissions.
func userError(err error) error {
	msg := core.MapError(err)
	var statusErr *core.RemoteStatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%s (%s): %s", msg.Message, msg.Code, statusErr.Body)
	}
	return fmt.Errorf("%s (%s): %w", msg.Message, msg.Code, err)
}
