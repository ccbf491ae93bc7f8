package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"animegen/internal/generate"
	"animegen/internal/registry"
	"animegen/internal/replicate"
)

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the configured image and music models",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			renderModels(cmd.OutOrStdout(), reg)
			return nil
		},
	}
}

func newCheckModelsCmd(a *app) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "check-models",
		Short: "Smoke-test every image model with a single-output request",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			client := replicate.New(replicate.Config{
				BaseURL:      a.cfg.ReplicateBaseURL,
				Token:        a.cfg.ReplicateToken,
				PollInterval: a.cfg.PollInterval.Std(),
				Logger:       a.log,
			})
			svc := generate.New(generate.Config{
				Registry: reg,
				Upstream: client,
				Secrets:  []string{client.Token()},
				Logger:   a.log,
			})
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			results, err := svc.CheckModels(ctx)
			failed := renderChecks(cmd.OutOrStdout(), results)
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d model(s) failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "Overall timeout for the check run")
	return cmd
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}

func renderModels(w io.Writer, reg *registry.Registry) {
	table := newTable(w, []string{"ID", "NAME", "FAMILY", "SPEED", "IMAGE", "BACKGROUND"})
	for _, d := range reg.Models() {
		image := "no"
		switch {
		case d.RequiresImage:
			image = "required"
		case d.SupportsImage:
			image = "optional"
		}
		table.Append([]string{d.ID, d.Name, string(d.Family), string(d.Speed), image, strconv.FormatBool(d.SupportsBackground)})
	}
	for _, d := range reg.MusicModels() {
		table.Append([]string{d.ID, d.Name, string(d.Family), string(d.Speed), "-", "-"})
	}
	table.Render()
}

// renderChecks prints check results followed by a summary line and returns
// the number of failures.
func renderChecks(w io.Writer, results []generate.CheckResult) int {
	table := newTable(w, []string{"ID", "NAME", "STATUS", "TIME", "ERROR"})
	var ok, failed, skipped int
	for _, r := range results {
		switch r.Status {
		case generate.CheckOK:
			ok++
		case generate.CheckFailed:
			failed++
		case generate.CheckSkipped:
			skipped++
		}
		dur := "-"
		if r.Status != generate.CheckSkipped {
			dur = r.Duration.Round(100 * time.Millisecond).String()
		}
		table.Append([]string{r.ID, r.Name, r.Status, dur, r.Error})
	}
	table.Render()
	fmt.Fprintf(w, "\n%d ok, %d failed, %d skipped (need reference image)\n", ok, failed, skipped)
	return failed
}
