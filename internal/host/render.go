package host

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rebelice/uuidview/internal/models"
)

// renderSearchForm lays out one line per condition followed by an empty input row
func (a *Admin) renderSearchForm(req Request, w io.Writer) string {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(a.theme.TableHeader)
	label := r.NewStyle().Foreground(a.theme.Label)
	op := r.NewStyle().Foreground(a.theme.Operator)
	value := r.NewStyle().Foreground(a.theme.Value)
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.theme.Border).
		Padding(0, 1)

	lines := []string{title.Render("Search " + req.Table)}
	for _, cond := range req.Where {
		column := cond.Column
		if column == "" {
			column = "(any)"
		}
		lines = append(lines, fmt.Sprintf("%s %s [%s]",
			label.Render(column),
			op.Render(string(cond.Operator)),
			value.Render(a.FormatValue(cond.Value)),
		))
	}
	lines = append(lines, fmt.Sprintf("%s %s [%s]", label.Render("(any)"), op.Render(string(models.OpEqual)), ""))

	return box.Render(strings.Join(lines, "\n")) + "\n"
}

// RenderTable writes result as a bordered table
func (a *Admin) RenderTable(w io.Writer, result *models.ResultSet) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Foreground(a.theme.TableHeader).Padding(0, 1)
	cell := r.NewStyle().Foreground(a.theme.Foreground).Padding(0, 1)
	null := r.NewStyle().Foreground(a.theme.Null).Padding(0, 1)

	cells := a.Cells(result)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(a.theme.Border)).
		Headers(result.Columns...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row >= 0 && row < len(result.Rows) && col < len(result.Columns) {
				if result.Rows[row][result.Columns[col]] == nil {
					return null
				}
			}
			return cell
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Cells converts result rows to display strings in column order
func (a *Admin) Cells(result *models.ResultSet) [][]string {
	data := make([][]string, len(result.Rows))
	for i, row := range result.Rows {
		rowData := make([]string, len(result.Columns))
		for j, col := range result.Columns {
			rowData[j] = a.truncate(a.FormatValue(row[col]))
		}
		data[i] = rowData
	}
	return data
}

// FormatValue converts a database value to display text
func (a *Admin) FormatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return a.nullText
	case string:
		return printable(v)
	case []byte:
		return printable(string(v))
	case map[string]interface{}, []interface{}:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(jsonBytes)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func (a *Admin) truncate(s string) string {
	if a.maxCell <= 0 || utf8.RuneCountInString(s) <= a.maxCell {
		return s
	}
	runes := []rune(s)
	return string(runes[:a.maxCell]) + "…"
}

// printable returns s, or its hex form prefixed with 0x when it holds raw bytes
func printable(s string) string {
	if !utf8.ValidString(s) {
		return "0x" + hex.EncodeToString([]byte(s))
	}
	for _, r := range s {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return "0x" + hex.EncodeToString([]byte(s))
		}
	}
	return s
}
