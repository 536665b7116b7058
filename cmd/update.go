package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/solvewise/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update solvewise to the latest release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		const limit = 2 * time.Minute
		ctx, cancel := context.WithTimeout(cmdContext(cmd), limit)
		defer cancel()

		checkOnly, _ := cmd.Flags().GetBool("check")
		target, _ := cmd.Flags().GetString("to")
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(limit))

		if checkOnly {
			res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: currentVersion()})
			if err != nil {
				return err
			}
			if res.UpdateAvailable {
				printf(cmd, "solvewise %s is available (running %s)\n%s\n", res.LatestVersion, res.CurrentVersion, res.ReleaseURL)
			} else {
				printf(cmd, "solvewise %s is the latest release\n", currentVersion())
			}
			return nil
		}

		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: currentVersion(),
			TargetVersion:  target,
		}, func(p selfupdate.UpdateProgress) {
			printf(cmd, "%s\n", p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			printf(cmd, "This is a development build; install a release to use update.\n")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			printf(cmd, "solvewise is up to date.\n")
			return nil
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nRe-run with permission to write the executable, e.g. sudo solvewise update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
	updateCmd.Flags().String("to", "", "Install this release tag instead of the latest")
}
