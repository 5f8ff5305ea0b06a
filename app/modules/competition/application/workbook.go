package competitionservice

import (
	"bytes"
	"context"
	"fmt"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/Black-And-White-Club/irock/app/shared/results"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var workbookHeader = []any{"Lugar", "Nombre", "Apellido", "Usuario", "Género", "Puntos", "Distancia (m)"}

// LeaderboardWorkbook exports the full ranking of every category, one sheet
// per category.
func (s *CompetitionService) LeaderboardWorkbook(ctx context.Context) ([]byte, error) {
	return snapshotOperation(s, ctx, "LeaderboardWorkbook", "all", func(snap *competitiondomain.Snapshot) (results.OperationResult[[]byte, error], error) {
		data, err := BuildLeaderboardWorkbook(competitiondomain.RankAll(snap.Participants, len(snap.Participants)))
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return success(data)
	})
}

// BuildLeaderboardWorkbook renders boards as an XLSX file.
func BuildLeaderboardWorkbook(boards []competitiondomain.Leaderboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	title := cases.Title(language.Spanish)

	for i, board := range boards {
		sheet := title.String(string(board.Category))
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}

		if err := f.SetSheetRow(sheet, "A1", &workbookHeader); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		for pos, p := range board.Entries {
			axis, err := excelize.CoordinatesToCellName(1, pos+2)
			if err != nil {
				return nil, err
			}
			row := []any{pos + 1, p.FirstName, p.LastName, p.Username, string(p.Gender), p.Score, p.DistanceClimbed}
			if err := f.SetSheetRow(sheet, axis, &row); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
