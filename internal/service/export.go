package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

var historyExportHeader = []string{
	"Timestamp",
	"ECG",
	"Heart Rate",
	"SpO2",
	"Body Temp",
	"Room Temp",
	"Humidity",
	"Air Quality",
}

// ExportHistory renders the patient's history window (same 100-row window as
// the JSON endpoint) as an .xlsx workbook for clinicians.
func (s *ReadingService) ExportHistory(patientID uint) ([]byte, string, error) {
	readings, err := s.History(patientID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()

	sheetName := "Readings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range historyExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, title)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for row, reading := range readings {
		values := []interface{}{
			reading.Timestamp.Format(time.RFC3339),
			reading.ECGValue,
			reading.HeartRate,
			reading.SpO2,
			reading.BodyTemp,
			reading.RoomTemp,
			reading.Humidity,
			reading.AirQuality,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}
	f.Close()

	filename := fmt.Sprintf("patient-%d-readings-%s.xlsx", patientID, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
