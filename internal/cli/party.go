package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a party (creates it if it does not exist)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			req := map[string]string{"name": name}
			var result JoinResult

			if err := client.Post(fmt.Sprintf("/api/v1/parties/%s/join", code), req, &result); err != nil {
				return err
			}

			// Persist the connection ID so later commands act as this member
			if err := cfg.SaveConnection(result.ConnectionID); err != nil {
				return fmt.Errorf("failed to save connection ID: %w", err)
			}
			client.SetConnectionID(result.ConnectionID)

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get party details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result Party

			if err := client.Get(fmt.Sprintf("/api/v1/parties/%s", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start a round (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			if err := client.Post(fmt.Sprintf("/api/v1/parties/%s/start", code), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Round started in party %s", code))
			return nil
		},
	}
}

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart <code>",
		Short: "Restart the round with a fresh word (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			if err := client.Post(fmt.Sprintf("/api/v1/parties/%s/restart", code), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Round restarted in party %s", code))
			return nil
		},
	}
}

func newGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <code> <word>",
		Short: "Submit a guess for the current round",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, word := args[0], args[1]

			req := map[string]string{"guess": word}
			var result GuessResult

			if err := client.Post(fmt.Sprintf("/api/v1/parties/%s/guess", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newFinishCmd() *cobra.Command {
	var tries int
	var lost bool

	cmd := &cobra.Command{
		Use:   "finish <code>",
		Short: "Report the current round as finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			req := map[string]any{
				"tries":       tries,
				"finish_time": time.Now().UnixMilli(),
				"lost":        lost,
			}

			if err := client.Post(fmt.Sprintf("/api/v1/parties/%s/finish", code), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Finish reported for party %s", code))
			return nil
		},
	}

	cmd.Flags().IntVar(&tries, "tries", 0, "Number of guesses used (required)")
	cmd.Flags().BoolVar(&lost, "lost", false, "Report the round as lost")
	_ = cmd.MarkFlagRequired("tries")

	return cmd
}

func newLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <code>",
		Short: "Leave a party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			if err := client.Post(fmt.Sprintf("/api/v1/parties/%s/leave", code), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Left party %s", code))
			return nil
		},
	}
}
