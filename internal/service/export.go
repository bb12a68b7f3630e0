package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/HadiRehman/NLSA-USA/internal/domain"

	"github.com/xuri/excelize/v2"
)

const rosterSheet = "Players"

var rosterColumns = []string{
	"Id", "SportCategory", "PlayerName", "EventName", "EventDate", "CityLocation",
	"Email", "JerseyNumber", "Status", "CreatedAt",
}

// ExportRoster writes every player and their stats to an xlsx workbook.
func (s *PlayerService) ExportRoster(ctx context.Context) ([]byte, error) {
	players, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	data, err := buildRoster(players)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int("players", len(players)).Msg("roster exported")
	return data, nil
}

func buildRoster(players []domain.Player) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), rosterSheet); err != nil {
		return nil, fmt.Errorf("failed to name roster sheet: %w", err)
	}

	header := make([]any, 0, len(rosterColumns)+len(domain.AllStats))
	for _, c := range rosterColumns {
		header = append(header, c)
	}
	for _, st := range domain.AllStats {
		header = append(header, st.Label())
	}
	if err := f.SetSheetRow(rosterSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write roster header: %w", err)
	}

	for i, p := range players {
		row := []any{
			p.ID, p.SportCategory, p.PlayerName, p.EventName, p.EventDate, p.CityLocation,
			p.Email, p.JerseyNumber, string(p.Status), p.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		for _, st := range domain.AllStats {
			v, _ := p.Stats.Lookup(st)
			row = append(row, string(v))
		}

		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(rosterSheet, axis, &row); err != nil {
			return nil, fmt.Errorf("failed to write roster row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(rosterSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze roster header: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write roster: %w", err)
	}
	return buf.Bytes(), nil
}
