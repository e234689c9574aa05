package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/scout/internal/core/domain"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the response cache",
	}
	cmd.AddCommand(c.newCacheStatsCmd())
	cmd.AddCommand(c.newCacheClearCmd())
	cmd.AddCommand(c.newCacheInvalidateCmd())
	return cmd
}

func (c *CLI) newCacheStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.app.CacheStats(cmd.Context(), globalOptions(cmd))
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			renderCacheStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the statistics as JSON")
	return cmd
}

func renderCacheStats(w io.Writer, stats domain.CacheStats) {
	s := newStyles(w)
	if !stats.Enabled {
		_, _ = fmt.Fprintln(w, s.Warn.Render("cache is disabled"))
		return
	}

	budget := "unlimited"
	if stats.MaxSizeBytes > 0 {
		budget = formatBytes(stats.MaxSizeBytes)
	}
	rows := [][]string{
		{"Entries", strconv.Itoa(stats.TotalEntries)},
		{"Discovery", strconv.Itoa(stats.DiscoveryCount)},
		{"Research", strconv.Itoa(stats.ResearchCount)},
		{"Expired", strconv.Itoa(stats.ExpiredCount)},
		{"Size", formatBytes(stats.TotalSizeBytes) + " / " + budget},
		{"Oldest", formatTime(stats.OldestTimestamp)},
		{"Newest", formatTime(stats.NewestTimestamp)},
		{"Orphans cleaned", strconv.Itoa(stats.OrphansCleanedLastStartup)},
	}
	_, _ = fmt.Fprintln(w, s.table([]string{"Cache", "Value"}, rows))
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func (c *CLI) newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cacheType, err := cacheTypeFlag(cmd, false)
			if err != nil {
				return err
			}
			n, err := c.app.ClearCache(cmd.Context(), globalOptions(cmd), cacheType)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", n)
			return nil
		},
	}
	cmd.Flags().StringP("type", "t", "", "Only clear this cache type: discovery or research")
	return cmd
}

func (c *CLI) newCacheInvalidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invalidate",
		Short: "Remove a single cached response",
		Long: "Remove the entry whose key parts match exactly, for example:\n" +
			"  scout cache invalidate --type discovery --key region=Sydney --key dwelling_type=house" +
			" --key max_price=800000 --key provider=perplexity",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cacheType, err := cacheTypeFlag(cmd, true)
			if err != nil {
				return err
			}
			pairs, _ := cmd.Flags().GetStringArray("key")
			parts, err := parseKeyParts(pairs)
			if err != nil {
				return err
			}

			removed, err := c.app.InvalidateCache(cmd.Context(), globalOptions(cmd), cacheType, parts)
			if err != nil {
				return err
			}
			if removed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "entry removed")
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no matching entry")
			}
			return nil
		},
	}
	cmd.Flags().StringP("type", "t", "", "Cache type: discovery or research")
	cmd.Flags().StringArrayP("key", "k", nil, "Key part as name=value (repeatable)")
	return cmd
}

func cacheTypeFlag(cmd *cobra.Command, required bool) (domain.CacheType, error) {
	value, _ := cmd.Flags().GetString("type")
	if value == "" && !required {
		return "", nil
	}
	return domain.ParseCacheType(value)
}

func parseKeyParts(pairs []string) (domain.KeyParts, error) {
	parts := make(domain.KeyParts, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, domain.NewValidationError("key", fmt.Sprintf("key part '%s' must look like name=value", pair))
		}
		parts[strings.TrimSpace(name)] = value
	}
	return parts, nil
}
