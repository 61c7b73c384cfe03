package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"elevate/pkg/errors"
	"elevate/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List tuning runs recorded in the experiment store",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := LoadConfig(path)
		if err != nil {
			return err
		}
		if cfg.Store == "" {
			return errors.Newf("elevate: no store configured in %s", path)
		}

		s, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.Runs(cmd.Context())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		for _, r := range runs {
			fmt.Printf("%4d  %-20s  %-10s  %s  best %s  test %s\n",
				r.ID, r.Name, r.Model, r.CreatedAt.Format(time.DateTime),
				formatParams(r.BestParams), formatParams(r.TestScores))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
