package tui

import (
	"fmt"
	"strconv"

	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/messages"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// RecipeGrid lays recipe cards out in rows of columns cells.
// Each card shows the selection number, name and servings.
func RecipeGrid(recipes []domain.Recipe, columns int, catalog *messages.Catalog) string {
	if len(recipes) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}
	if columns > len(recipes) {
		columns = len(recipes)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = true

	row := make(table.Row, 0, columns)
	for i, r := range recipes {
		card := fmt.Sprintf("[%d] %s\n%s", i+1, r.Name, catalog.Sprintf(messages.KeyServings, r.Servings))
		row = append(row, card)
		if len(row) == columns {
			tw.AppendRow(row)
			row = make(table.Row, 0, columns)
		}
	}
	if len(row) > 0 {
		for len(row) < columns {
			row = append(row, "")
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}

// IngredientTable lists a recipe's ingredients.
func IngredientTable(ingredients []domain.Ingredient, catalog *messages.Catalog) string {
	rows := make([][]string, 0, len(ingredients))
	for _, in := range ingredients {
		rows = append(rows, []string{
			strconv.FormatFloat(in.Quantity, 'f', -1, 64),
			in.Measure,
			in.Name,
		})
	}
	return renderTable(
		[]string{"", "", catalog.Text(messages.KeyIngredients)},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	)
}

// StepTable lists a recipe's steps with selection numbers and media markers.
func StepTable(steps []domain.Step, catalog *messages.Catalog) string {
	rows := make([][]string, 0, len(steps))
	for i, s := range steps {
		media := ""
		switch {
		case s.HasVideo():
			media = catalog.Text(messages.KeyVideo)
		case s.HasThumbnail():
			media = catalog.Text(messages.KeyThumbnail)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), s.ShortDescription, media})
	}
	return renderTable(
		[]string{"#", catalog.Text(messages.KeySteps), ""},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	)
}
