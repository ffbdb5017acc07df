package library

import (
	"strings"

	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Breadboard grid
// ============================================================

const (
	// Pitch — шаг отверстий макетной платы, мм.
	Pitch = 2.54

	Rows    = "ABCDEFGHIJ"
	Columns = 63
)

// RowColToPosition переводит координату отверстия в мм от угла платы.
// Неизвестная строка считается строкой A, столбец зажимается в [1, 63].
func RowColToPosition(row string, col int) models.Point {
	rowIndex := RowIndex(row)
	if rowIndex < 0 {
		rowIndex = 0
	}
	colIndex := min(max(col-1, 0), Columns-1)
	return models.Point{
		X: float64(colIndex) * Pitch,
		Y: float64(rowIndex) * Pitch,
	}
}

// HolePosition — центр отверстия.
func HolePosition(row string, col int) models.Point {
	p := RowColToPosition(row, col)
	return models.Point{X: p.X + Pitch/2, Y: p.Y + Pitch/2}
}

// RowIndex возвращает индекс строки A..J или -1.
func RowIndex(row string) int {
	if len(row) != 1 {
		return -1
	}
	return strings.Index(Rows, strings.ToUpper(row))
}

// RowLetter — обратное к RowIndex, вне диапазона продолжает алфавит.
func RowLetter(index int) string {
	return string(rune('A' + index))
}
