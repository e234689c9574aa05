package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/ui/style"
)

func (c *CLI) newCheckpointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoints",
		Short: "Inspect run checkpoints",
	}
	cmd.AddCommand(c.newCheckpointsListCmd())
	cmd.AddCommand(c.newCheckpointsShowCmd())
	return cmd
}

func (c *CLI) newCheckpointsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list RUN_ID",
		Short: "List the checkpoints of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := c.app.ListCheckpoints(cmd.Context(), globalOptions(cmd), args[0])
			if err != nil {
				return err
			}
			renderCheckpoints(cmd.OutOrStdout(), args[0], infos)
			return nil
		},
	}
}

func renderCheckpoints(w io.Writer, runID string, infos []domain.CheckpointInfo) {
	s := newStyles(w)
	if len(infos) == 0 {
		_, _ = fmt.Fprintln(w, s.Muted.Render("no checkpoints for run "+runID))
		return
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		verified := s.Good.Render(style.Check)
		if !info.Verified {
			verified = s.Bad.Render(style.Cross)
		}
		rows = append(rows, []string{
			info.Name,
			string(info.Phase),
			strconv.Itoa(info.Sequence),
			formatBytes(info.SizeBytes),
			info.ModTime.Local().Format(time.DateTime),
			verified,
		})
	}
	_, _ = fmt.Fprintln(w, s.table([]string{"Checkpoint", "Phase", "Seq", "Size", "Modified", "Verified"}, rows))
}

func (c *CLI) newCheckpointsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Print the newest verified checkpoint of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, _ := cmd.Flags().GetString("phase")
			phase, err := domain.ParsePhase(value)
			if err != nil {
				return err
			}
			record, err := c.app.ShowCheckpoint(cmd.Context(), globalOptions(cmd), args[0], phase)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), record)
		},
	}
	cmd.Flags().String("phase", string(domain.PhaseResearch), "Phase to load: discovery or research")
	return cmd
}

