package attendance

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type column struct {
	header string
	width  float64
}

var exportColumns = []column{
	{"ID", 10},
	{"Nama Guru", 25},
	{"QR Code", 25},
	{"Latitude", 14},
	{"Longitude", 14},
	{"Waktu", 25},
}

// Export renders every attendance record into an xlsx workbook, one row per
// record, with waktu shifted into the export location.
func (s *Service) Export(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.store.ListChronological(ctx)
	if err != nil {
		s.log.Error("export absensi: query failed", zap.Error(err))
		return nil, ErrInternal("Gagal export ke Excel")
	}

	buf, err := s.renderWorkbook(rows)
	if err != nil {
		s.log.Error("export absensi: render failed", zap.Error(err))
		return nil, ErrInternal("Gagal export ke Excel")
	}
	s.metrics.Export()
	return buf, nil
}

func (s *Service) renderWorkbook(rows []Attendance) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	header := make([]any, 0, len(exportColumns))
	for i, col := range exportColumns {
		header = append(header, col.header)
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, col.width); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.ColumnNumberToName(len(exportColumns))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", bold); err != nil {
		return nil, err
	}

	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			r.ID,
			r.Nama,
			r.QRCode,
			coord(r.Lat),
			coord(r.Lng),
			r.Waktu.In(s.exportLoc).Format(ExportTimestamp),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func coord(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
