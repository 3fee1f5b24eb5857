package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
)

// cellRange bounds how much of each sheet is pulled. A1:Z1000 covers the
// working area of typical documents without unbounded transfers.
const cellRange = "A1:Z1000"

// resolveSpreadsheet enumerates sheets through the Sheets API and fetches a
// bounded range per sheet. A single sheet's failure is logged and skipped,
// not fatal to the document.
func (r *Resolver) resolveSpreadsheet(ctx context.Context, res *types.ResolvedURL, fileID string) {
	viewURL := r.docsBase + "/spreadsheets/d/" + fileID + "/edit"

	if r.google == nil {
		r.publicMetadata(ctx, res, viewURL, &AuthError{Err: errors.New("no api credentials configured")})
		return
	}

	spreadsheet, err := r.google.Sheets.Spreadsheets.Get(fileID).Context(ctx).Do()
	if err != nil {
		r.publicMetadata(ctx, res, viewURL, classifyAPIError(err))
		return
	}

	if spreadsheet.Properties != nil {
		res.Title = spreadsheet.Properties.Title
	}

	var parts []string
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil {
			continue
		}
		name := sheet.Properties.Title
		values, err := r.google.Sheets.Spreadsheets.Values.
			Get(fileID, fmt.Sprintf("'%s'!%s", name, cellRange)).
			Context(ctx).Do()
		if err != nil {
			r.log.Warn("sheet fetch failed, skipping",
				zap.String("file_id", fileID),
				zap.String("sheet", name),
				zap.Error(err))
			continue
		}
		parts = append(parts, formatSheet(name, values.Values))
	}

	res.Success = true
	res.Content = strings.Join(parts, "\n\n")
	res.WordCount = len(strings.Fields(res.Content))
}

// formatSheet renders one sheet as a tab-separated block under its name.
func formatSheet(name string, rows [][]interface{}) string {
	var b strings.Builder
	b.WriteString("=== ")
	b.WriteString(name)
	b.WriteString(" ===")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprint(cell)
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(cells, "\t"))
	}
	return b.String()
}
