// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AccelByte/extend-spotlight-session/internal/app"
	"github.com/AccelByte/extend-spotlight-session/internal/config"
	"github.com/AccelByte/extend-spotlight-session/pkg/match"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "spotlight"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Headless Spotlight meetup session",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(runCmd(), checkInCmd(), checkOutCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// loadConfig reads and validates the environment, then configures logging.
func loadConfig() (*config.Config, error) {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)
	return cfg, nil
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the session, reading intents from stdin",
		Long: `Runs the polling session against SPOTLIGHT_BASE_URL.

Each stdin line is one intent, for example:
  location 12.9716 77.5946
  send_request 42
  mark_reached
  end_match Running late
  select_rating 8
  submit_feedback great chat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			application, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			return application.Run(ctx, cmd.InOrStdin())
		},
	}
}

func checkInCmd() *cobra.Command {
	var (
		lat, lon float64
		req      match.CheckInRequest
	)

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Go live at a position without starting a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := app.CheckIn(cmd.Context(), app.NewClient(cfg), lat, lon, req); err != nil {
				return fmt.Errorf("%s: %w", match.Message(err), err)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude")
	cmd.Flags().StringVar(&req.Place, "place", "", "Meeting place")
	cmd.Flags().StringVar(&req.Intent, "intent", "", "What you are up for")
	cmd.Flags().StringVar(&req.MeetTime, "meet-time", "", "When you can meet")
	cmd.Flags().StringVar(&req.Bill, "bill", "", "Who pays")
	cmd.Flags().StringVar(&req.Clue, "clue", "", "How to recognise you")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func checkOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Stop broadcasting your position",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := app.CheckOut(cmd.Context(), app.NewClient(cfg)); err != nil {
				return fmt.Errorf("%s: %w", match.Message(err), err)
			}
			return nil
		},
	}
}
