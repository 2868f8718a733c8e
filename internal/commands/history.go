package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/faktura-dev/faktura/internal/history"
)

func newHistoryCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the row changes made in this project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := history.Read(a.dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, styleDim.Render("No history."))
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			rows := make([][]string, len(entries))
			for i, e := range entries {
				rowID := ""
				if e.RowID != 0 {
					rowID = strconv.Itoa(e.RowID)
				}
				session := e.Session
				if len(session) > 8 {
					session = session[:8]
				}
				rows[i] = []string{e.Timestamp.Local().Format("2006-01-02 15:04"), session, e.Action, rowID, e.Details}
			}
			fmt.Fprint(out, renderTable([]string{"Tid", "Session", "Åtgärd", "Rad", ""}, rows, alignRight{3: true}))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show the last n entries, 0 for all")
	return cmd
}
