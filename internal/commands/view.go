package commands

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/faktura-dev/faktura/internal/history"
	"github.com/faktura-dev/faktura/internal/model"
	"github.com/faktura-dev/faktura/internal/render"
	"github.com/faktura-dev/faktura/internal/tax"
)

// cliView feeds flag or editor values to a rowedit.Session, reports
// changes on out and collects them for the history log.
type cliView struct {
	out     io.Writer
	values  url.Values
	entries []history.Entry
}

func (v *cliView) log(action string, rowID int, details string) {
	v.entries = append(v.entries, history.Entry{Action: action, RowID: rowID, Details: details})
}

func (v *cliView) FormValues() (url.Values, error) { return v.values, nil }

func (v *cliView) OnAdd(item model.LineItem) {
	fmt.Fprintf(v.out, "%s row %d: %s\n", styleGreen.Render("Added"), item.ID, item.Description)
	v.log(history.ActionAdd, item.ID, item.Description)
}

func (v *cliView) OnEdit(item model.LineItem) {
	fmt.Fprintf(v.out, "%s row %d: %s\n", styleGreen.Render("Updated"), item.ID, item.Description)
	v.log(history.ActionEdit, item.ID, item.Description)
}

func (v *cliView) OnDelete(rowID int) {
	fmt.Fprintf(v.out, "%s row %d\n", styleRed.Render("Deleted"), rowID)
	v.log(history.ActionDelete, rowID, "")
}

func (v *cliView) OnReorder(ids []int) {
	parts := make([]string, len(ids))
	for i, rowID := range ids {
		parts[i] = strconv.Itoa(rowID)
	}
	order := strings.Join(parts, " ")
	fmt.Fprintf(v.out, "Order: %s\n", order)
	v.log(history.ActionReorder, 0, order)
}

var rowHeaders = []string{"ID", "Beskrivning", "À-pris", "Antal", "Summa", "Moms", ""}

// writeRows prints the row table.
func writeRows(out io.Writer, items []model.LineItem) {
	if len(items) == 0 {
		fmt.Fprintln(out, styleDim.Render("No rows."))
		return
	}
	var rows [][]string
	for _, r := range render.Rows(items) {
		marker := ""
		if r.IsRotRut {
			marker = styleGreen.Render("ROT/RUT")
		}
		rows = append(rows, []string{
			strconv.Itoa(r.ID), r.Description, r.Cost, r.Count, r.Total, r.VAT, marker,
		})
	}
	fmt.Fprint(out, renderTable(rowHeaders, rows, alignRight{0: true, 2: true, 3: true, 4: true, 5: true}))
}

// writeTotals prints the visible totals, or all six when all is set.
func writeTotals(out io.Writer, t tax.Totals, all bool) {
	var rows [][]string
	for _, v := range render.Totals(t) {
		if !v.Visible && !all {
			continue
		}
		label := v.Label
		if v.Name == tax.TotalCustomer {
			label = styleBold.Render(label)
		}
		rows = append(rows, []string{label, v.Value})
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, styleDim.Render("No totals."))
		return
	}
	fmt.Fprint(out, renderTable([]string{"Summa", "Belopp"}, rows, alignRight{1: true}))
}
