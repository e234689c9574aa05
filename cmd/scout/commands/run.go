package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/scout/internal/app"
	"go.trai.ch/scout/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Discover and research entities described by a plan file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			planPath, _ := cmd.Flags().GetString("plan")
			runID, _ := cmd.Flags().GetString("run-id")
			discoveryWorkers, _ := cmd.Flags().GetInt("discovery-workers")
			researchWorkers, _ := cmd.Flags().GetInt("research-workers")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			asJSON, _ := cmd.Flags().GetBool("json")

			result, err := c.app.Run(cmd.Context(), app.RunOptions{
				GlobalOptions:    globalOptions(cmd),
				PlanPath:         planPath,
				RunID:            runID,
				DiscoveryWorkers: discoveryWorkers,
				ResearchWorkers:  researchWorkers,
				NoCache:          noCache,
			})
			if result.RunID == "" {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if werr := writeJSON(out, result); werr != nil {
					return werr
				}
				return err
			}
			renderRunResult(out, result)
			return err
		},
	}
	cmd.Flags().StringP("plan", "p", "", "Research plan file (regions, dwelling type, price, entities)")
	cmd.Flags().String("run-id", "", "Run identifier; reusing one resumes from its checkpoints")
	cmd.Flags().Int("discovery-workers", 0, "Discovery pool size (0 = scale to the host)")
	cmd.Flags().Int("research-workers", 0, "Research pool size (0 = scale to the host)")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the response cache")
	cmd.Flags().Bool("json", false, "Print the run result as JSON")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func renderRunResult(w io.Writer, result domain.RunResult) {
	s := newStyles(w)

	rows := make([][]string, 0, len(result.Entities))
	for i, m := range result.Entities {
		source := "researched"
		if m.Fallback {
			source = "fallback"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			m.Identity.Name,
			m.Identity.State,
			formatPrice(m.MedianPrice),
			strconv.FormatFloat(m.CompositeScore, 'f', 1, 64),
			source,
		})
	}
	if len(rows) > 0 {
		_, _ = fmt.Fprintln(w, s.table([]string{"#", "Name", "State", "Median price", "Score", "Source"}, rows))
	}

	status := s.Good.Render(string(result.Status))
	if result.Status != domain.RunCompleted {
		status = s.Bad.Render(string(result.Status))
	}
	_, _ = fmt.Fprintf(w, "run %s %s\n", result.RunID, status)
	_, _ = fmt.Fprintln(w, s.Muted.Render(fmt.Sprintf(
		"discovered %d, resumed %d, succeeded %d, fallbacks %d, skipped %d, cache hits %d",
		result.Discovered, result.Resumed, result.Succeeded, result.Fallbacks, result.Skipped, result.CacheHits,
	)))
	if result.FatalError != "" {
		_, _ = fmt.Fprintln(w, s.Bad.Render("stopped: "+result.FatalError))
	}
}

func formatPrice(p float64) string {
	if p <= 0 {
		return "-"
	}
	return "$" + strconv.FormatFloat(p, 'f', 0, 64)
}
