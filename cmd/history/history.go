// Package history lists and exports saved analysis runs
package history

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ecolens/carbon-csv/cmd/root"
	"ecolens/carbon-csv/internal/logging"
	"ecolens/carbon-csv/internal/resultstore"
)

var showID int64

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List saved analysis runs",
	Long: `History lists the analysis runs recorded in the local history database,
most recent first. Use --show to print the full JSON document of one run.`,
	Run: historyFunc,
}

func init() {
	Cmd.Flags().Int64Var(&showID, "show", 0, "Print the stored JSON document for this run ID")
}

func historyFunc(cmd *cobra.Command, args []string) {
	store, err := resultstore.Open(root.Cfg.Results.HistoryFile, logging.GetLogger())
	if err != nil {
		root.Log.Fatalf("Error opening history database: %v", err)
	}
	defer store.Close()

	if showID > 0 {
		document, err := store.Document(showID)
		if err != nil {
			root.Log.Fatalf("Error loading run %d: %v", showID, err)
		}
		fmt.Fprintln(os.Stdout, string(document))
		return
	}

	runs, err := store.List()
	if err != nil {
		root.Log.Fatalf("Error listing history: %v", err)
	}
	if len(runs) == 0 {
		root.Log.Info("No saved runs yet")
		return
	}

	for _, run := range runs {
		degraded := ""
		if run.Degraded {
			degraded = " (degraded)"
		}
		root.Log.Infof("#%d %s %s: %.2f kg over %d days, annual %.0f kg%s",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.SourceFile,
			run.TotalEmissionsKg, run.PeriodDays, run.AnnualProjectionKg, degraded)
	}
}
