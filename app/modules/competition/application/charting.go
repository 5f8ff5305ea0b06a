package competitionservice

import (
	"bytes"
	"context"
	"fmt"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/Black-And-White-Club/irock/app/shared/results"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors of rendered charts.
type ChartPalette struct {
	Background drawing.Color
	Text       drawing.Color
	Ruta       drawing.Color
	Boulder    drawing.Color
}

// DefaultPalette matches the iRock dashboard.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorWhite,
	Text:       drawing.ColorFromHex("1f2937"),
	Ruta:       drawing.ColorFromHex("f97316"),
	Boulder:    drawing.ColorFromHex("0ea5e9"),
}

// StatsChart renders active rutas and boulders per category as a PNG bar chart.
func (s *CompetitionService) StatsChart(ctx context.Context) ([]byte, error) {
	return snapshotOperation(s, ctx, "StatsChart", "all", func(snap *competitiondomain.Snapshot) (results.OperationResult[[]byte, error], error) {
		stats := competitiondomain.SummarizeStatistics(snap.Blocks, snap.Participants, s.opts.StatsGradeTable)
		data, err := GenerateCategoryChart(stats, DefaultPalette)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return success(data)
	})
}

// GenerateCategoryChart draws two bars per category: rutas and boulders.
func GenerateCategoryChart(stats competitiondomain.SystemStats, palette ChartPalette) ([]byte, error) {
	var bars []chart.Value
	highest := 1.0
	for _, c := range competitiondomain.Categories {
		counts := stats.PerCategory[c]
		bars = append(bars,
			chart.Value{
				Label: fmt.Sprintf("%s R", c),
				Value: float64(counts.Rutas),
				Style: chart.Style{FillColor: palette.Ruta, StrokeColor: palette.Ruta},
			},
			chart.Value{
				Label: fmt.Sprintf("%s B", c),
				Value: float64(counts.Boulders),
				Style: chart.Style{FillColor: palette.Boulder, StrokeColor: palette.Boulder},
			},
		)
		highest = max(highest, float64(counts.Rutas), float64(counts.Boulders))
	}

	graph := chart.BarChart{
		Title:  "Bloques activos por categoría",
		Width:  900,
		Height: 420,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		TitleStyle: chart.Style{FontColor: palette.Text},
		XAxis:      chart.Style{FontColor: palette.Text},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.Text},
			Range: &chart.ContinuousRange{Min: 0, Max: highest},
		},
		BarWidth:   60,
		BarSpacing: 30,
		Bars:       bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buffer.Bytes(), nil
}
