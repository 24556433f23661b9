package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/app"
)

var journalCmd = &cobra.Command{
	Use:   "journal [profile]",
	Short: "Display the change journal",
	Long: `Shows the recorded profile changes: profiles created, changed and
removed, favorites and shortcuts. With a profile name only that profile's
events are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJournal,
}

var (
	journalRaw   bool
	journalClear bool
)

func init() {
	journalCmd.Flags().BoolVar(&journalRaw, "raw", false, "Output events as JSON lines")
	journalCmd.Flags().BoolVar(&journalClear, "clear", false, "Delete the journal")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, args []string) error {
	journal := app.Default.Journal
	out := cmd.OutOrStdout()

	if journalClear {
		if err := journal.Remove(); err != nil {
			return fmt.Errorf("failed to clear journal: %w", err)
		}
		logSuccess("Cleared journal")
		return nil
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	}

	events, err := journal.Events(name)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	if len(events) == 0 {
		if name != "" {
			logInfo("No events found for profile %s", name)
		} else {
			logInfo("No events recorded")
		}
		return nil
	}

	for _, e := range events {
		if journalRaw {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
			if e.Details != "" {
				fmt.Fprintf(out, "[%s] %-16s %s (%s)\n", ts, e.Type, e.Profile, e.Details)
			} else {
				fmt.Fprintf(out, "[%s] %-16s %s\n", ts, e.Type, e.Profile)
			}
		}
	}

	return nil
}
