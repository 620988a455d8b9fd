package layout

// Fixed paddings inherited from the reference cards. The +1 row headroom in
// the row-height divisor and the /8 width-to-character heuristic are tuned
// values; keep them as-is for visual parity.
const (
	tablePadding    = 20.0
	cellTextInset   = 5.0
	cellTextDrop    = 6.0
	tableBottomPad  = 10.0
	charWidthDiv    = 8.0
	modeColumnIndex = 3
)

// drawTable lays out the header row and the contact rows, and returns the
// bottom Y of the table block for placing the info panel.
func (e *Engine) drawTable(cv Canvas, page Page) float64 {
	tcfg := e.cfg.Table
	card := e.cfg.Card

	tableX := tcfg.X
	tableY := card.Height * tcfg.YPercent
	tableWidth := card.Width - tcfg.WidthMargin
	tableHeight := card.Height * tcfg.HeightPercent

	colWidths := make([]float64, len(e.cfg.Columns.WidthsPercent))
	for i, p := range e.cfg.Columns.WidthsPercent {
		colWidths[i] = tableWidth * p
	}

	n := len(page.Records)
	if n > tcfg.MaxContacts {
		n = tcfg.MaxContacts
	}
	rowHeight := (tableHeight - tcfg.HeaderHeight - tablePadding) / float64(n+1)
	if rowHeight < tcfg.MinRowHeight {
		rowHeight = tcfg.MinRowHeight
	}
	if rowHeight > tcfg.MaxRowHeight {
		rowHeight = tcfg.MaxRowHeight
	}

	// Header row.
	headerY := tableY
	cv.FillRect(tableX, headerY, tableX+tableWidth, headerY+tcfg.HeaderHeight, e.pal.headerBg)
	cv.StrokeRect(tableX, headerY, tableX+tableWidth, headerY+tcfg.HeaderHeight, e.pal.border, 1)
	x := tableX
	for i, header := range e.cfg.Columns.Headers {
		cv.DrawText(x+cellTextInset, headerY+cellTextDrop, header, e.pal.headerText, "table_header")
		if i < len(colWidths)-1 {
			sepX := x + colWidths[i]
			cv.Line(sepX, headerY, sepX, headerY+tcfg.HeaderHeight, e.pal.headerText, 1)
		}
		x += colWidths[i]
	}

	// Data rows, alternating background by parity.
	for rowIdx, rec := range page.Records[:n] {
		rowY := headerY + tcfg.HeaderHeight + float64(rowIdx)*rowHeight
		bg := e.pal.rowBg
		if rowIdx%2 == 1 {
			bg = e.pal.rowBgAlt
		}
		cv.FillRect(tableX, rowY, tableX+tableWidth, rowY+rowHeight, bg)
		cv.StrokeRect(tableX, rowY, tableX+tableWidth, rowY+rowHeight, e.pal.border, 1)

		fields := e.fmtr.Format(rec).Fields()
		x = tableX
		for i, field := range fields {
			if i >= len(colWidths) {
				break
			}
			color := e.pal.text
			if i == modeColumnIndex && e.fmtr.IsDigital(rec.Get("mode"), rec.Get("submode")) {
				color = e.pal.digital
			}
			maxChars := int(colWidths[i] / charWidthDiv)
			if maxChars < 1 {
				maxChars = 1
			}
			if len(field) > maxChars {
				field = field[:maxChars]
			}
			cv.DrawText(x+cellTextInset, rowY+cellTextDrop, field, color, "table_cell")

			if i < len(colWidths)-1 {
				sepX := x + colWidths[i]
				cv.Line(sepX, rowY, sepX, rowY+rowHeight, e.pal.rowSeparator, 1)
			}
			x += colWidths[i]
		}
	}

	return headerY + tcfg.HeaderHeight + float64(n)*rowHeight + tableBottomPad
}
