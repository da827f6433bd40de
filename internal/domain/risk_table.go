package domain

import "strings"

const (
	// CityColumn - колонка CSV с названием города
	CityColumn = "city"
	// RiskColumnSuffix - суффикс колонок вида "<год>_risk"
	RiskColumnSuffix = "_risk"
)

// RiskTableRow - одна строка CSV: заголовок колонки -> сырое значение.
// Отсутствующее поле (строка короче заголовка) в map не попадает.
type RiskTableRow map[string]string

// Get возвращает значение колонки и признак его наличия
func (r RiskTableRow) Get(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// RiskTable - разобранная таблица рисков. Неизменяема после разбора.
type RiskTable struct {
	Headers []string
	Rows    []RiskTableRow
}

// ParseRiskTable разбирает CSV-текст построчно. Кавычки и экранирование не
// поддерживаются: строка делится по каждой запятой. Разбор никогда не
// возвращает ошибку - битые строки дают неполные записи.
func ParseRiskTable(text string) RiskTable {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if trimBlank(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return RiskTable{Headers: []string{}, Rows: []RiskTableRow{}}
	}

	headers := splitAndTrim(lines[0])
	rows := make([]RiskTableRow, 0, len(lines)-1)

	for _, line := range lines[1:] {
		values := splitAndTrim(line)
		row := make(RiskTableRow, len(headers))
		for i, h := range headers {
			// при повторяющемся заголовке отсутствующее поле затирает более раннее значение
			if i >= len(values) {
				delete(row, h)
				continue
			}
			row[h] = values[i]
		}
		rows = append(rows, row)
	}

	return RiskTable{Headers: headers, Rows: rows}
}

// Years возвращает идентификаторы годов по колонкам "<год>_risk" в порядке заголовка
func (t RiskTable) Years() []string {
	years := make([]string, 0)
	seen := make(map[string]struct{})
	for _, h := range t.Headers {
		year, ok := strings.CutSuffix(h, RiskColumnSuffix)
		if !ok || year == "" {
			continue
		}
		if _, dup := seen[year]; dup {
			continue
		}
		seen[year] = struct{}{}
		years = append(years, year)
	}
	return years
}

// RiskColumn возвращает имя колонки риска для года
func RiskColumn(year string) string {
	return year + RiskColumnSuffix
}

func splitAndTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = trimBlank(p)
	}
	return parts
}
