package layout

import (
	"strings"
	"unicode/utf8"

	"qslgen/record"
)

const (
	panelTextInset = 10.0
	panelHeaderPad = 5.0
	panelRowsPad   = 10.0
	maxInfoRowH    = 35.0
	potaGap        = 15.0
)

// hasAuxData reports whether a record contributes an info-panel row.
func hasAuxData(r record.Raw) bool {
	return r.Get("pota_ref") != "" || r.Get("comment_intl") != ""
}

// drawInfoPanel renders the additional-information block under the table.
// Each record with a POTA reference or comment gets one row of date+band,
// comment and POTA code; a page without any such record gets a single
// centered greeting instead so the panel is never blank.
func (e *Engine) drawInfoPanel(cv Canvas, m TextMeasurer, page Page, topY float64) {
	icfg := e.cfg.Info
	card := e.cfg.Card

	x := icfg.X
	y := topY + icfg.YOffset
	width := card.Width - icfg.WidthMargin
	height := card.Height * icfg.HeightPercent

	cv.FillRect(x, y, x+width, y+height, e.pal.sectionBg)
	cv.StrokeRect(x, y, x+width, y+height, e.pal.border, 1)
	cv.FillRect(x, y, x+width, y+icfg.HeaderHeight, e.pal.headerBg)
	cv.StrokeRect(x, y, x+width, y+icfg.HeaderHeight, e.pal.border, 1)
	cv.DrawText(x+panelTextInset, y+panelHeaderPad, "Additional Information", e.pal.headerText, "info_header")

	var rows []record.Raw
	for _, r := range page.Records {
		if hasAuxData(r) {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		e.drawDefaultMessage(cv, m, x, y, width, height)
		return
	}

	// Shrink rows to fit all data within the panel, but never below the
	// configured floor nor above 35px.
	availHeight := height - icfg.HeaderHeight - panelRowsPad
	rowHeight := availHeight / float64(len(rows))
	if rowHeight > maxInfoRowH {
		rowHeight = maxInfoRowH
	}
	if rowHeight < icfg.MinRowHeight {
		rowHeight = icfg.MinRowHeight
	}

	if icfg.ColumnRules {
		top := y + icfg.HeaderHeight
		cv.Line(x+icfg.CommentX-panelTextInset, top, x+icfg.CommentX-panelTextInset, y+height, e.pal.rowSeparator, 1)
		cv.Line(x+icfg.PotaX-panelTextInset, top, x+icfg.PotaX-panelTextInset, y+height, e.pal.rowSeparator, 1)
	}

	avgComment := e.avgCharWidth(m, "info_comment")

	for i, rec := range rows {
		rowY := y + icfg.HeaderHeight + panelRowsPad + float64(i)*rowHeight
		if rowY+rowHeight > y+height {
			break // rows past the panel bottom are dropped, not overflowed
		}
		if icfg.RowLines && i > 0 {
			cv.Line(x+panelHeaderPad, rowY-2, x+width-panelHeaderPad, rowY-2, e.pal.rowSeparator, 1)
		}

		f := e.fmtr.Format(rec)

		dateBand := f.Date + " " + f.Band
		dateBand = e.fitText(m, "info_data", dateBand, icfg.CommentX-2*panelTextInset)
		cv.DrawText(x+panelTextInset, rowY, dateBand, e.pal.text, "info_data")

		commentEnd := x + icfg.CommentX
		if comment := rec.Get("comment_intl"); comment != "" {
			budget := int(icfg.MaxCommentWidth / avgComment)
			if budget < 4 {
				budget = 4
			}
			if utf8.RuneCountInString(comment) > budget {
				r := []rune(comment)
				comment = string(r[:budget-3]) + "..."
			}
			color := e.pal.comment
			if e.fmtr.IsDigital(rec.Get("mode"), rec.Get("submode")) {
				color = e.pal.digital
			}
			cv.DrawText(x+icfg.CommentX, rowY, comment, color, "info_comment")
			commentEnd = x + icfg.CommentX + e.measure(m, "info_comment", comment)
		}

		if pota := strings.ToUpper(rec.Get("pota_ref")); pota != "" {
			potaX := x + icfg.PotaX
			if end := commentEnd + potaGap; end > potaX {
				potaX = end
			}
			text := e.fitText(m, "info_data", "POTA: "+pota, x+width-panelTextInset-potaX)
			cv.DrawText(potaX, rowY, text, e.pal.pota, "info_data")
		}
	}
}

// drawDefaultMessage centers one greeting from the configured list. The draw
// goes through the injected picker so tests can pin the selection.
func (e *Engine) drawDefaultMessage(cv Canvas, m TextMeasurer, x, y, width, height float64) {
	msgs := e.cfg.Info.DefaultMessages
	if len(msgs) == 0 {
		msgs = []string{"Thanks for the QSO!"}
	}
	msg := msgs[e.pick(len(msgs))]
	w := e.measure(m, "info_data", msg)
	tx := x + (width-w)/2
	ty := y + e.cfg.Info.HeaderHeight + (height-e.cfg.Info.HeaderHeight)/2 - 7
	cv.DrawText(tx, ty, msg, e.pal.text, "info_data")
}
