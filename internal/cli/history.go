package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ayusman/cubescan/internal/config"
	"github.com/ayusman/cubescan/internal/store"
)

var (
	historyLimit int
	historyDB    string
)

var historyCmd = &cobra.Command{
	Use:   "history [scan-id]",
	Short: "List recorded scans",
	Long: `List recent scans from the history database, or show one scan with its
faces and solution when an ID is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of scans to display")
	historyCmd.Flags().StringVar(&historyDB, "db", "", "History database path")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.New(historyPath(cfg))
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer st.Close()

	if len(args) == 1 {
		return showScan(cmd, st, args[0])
	}

	scans, err := st.Scans().List(historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(scans) == 0 {
		fmt.Fprintln(out, "no scans recorded")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTATUS\tMOVES")
	for _, sc := range scans {
		moves := "-"
		if sol, err := st.Solutions().GetByScanID(sc.ID); err == nil && sol.Error == "" {
			moves = fmt.Sprint(sol.MoveCount)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sc.ID, sc.CreatedAt.Format("2006-01-02 15:04"), sc.Status, moves)
	}
	return w.Flush()
}

func showScan(cmd *cobra.Command, st *store.Store, id string) error {
	sc, err := st.Scans().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("scan %s not found", id)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scan:       %s\n", sc.ID)
	fmt.Fprintf(out, "status:     %s\n", sc.Status)
	fmt.Fprintf(out, "date:       %s\n", sc.CreatedAt.Format("2006-01-02 15:04:05"))
	if sc.CubeString != "" {
		fmt.Fprintf(out, "cube:       %s\n", sc.CubeString)
		fmt.Fprintf(out, "translated: %s\n", sc.Translated)
	}

	faces, err := st.Faces().ListByScan(id)
	if err != nil {
		return err
	}
	for _, f := range faces {
		fmt.Fprintf(out, "  %d. %-6s %s\n", f.Sequence, f.Slot, f.Colors)
	}

	sol, err := st.Solutions().GetByScanID(id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case sol.Error != "":
		fmt.Fprintf(out, "error:      %s\n", sol.Error)
	default:
		fmt.Fprintf(out, "solution:   %s (%d moves)\n", sol.Notation, sol.MoveCount)
	}
	return nil
}

func historyPath(cfg *config.Config) string {
	if historyDB != "" {
		return historyDB
	}
	return cfg.Store.Path
}
