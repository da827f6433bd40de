package domain

import "strings"

// RiskLookup - нормализованное название города -> уровень риска для одного года.
// Строится заново при каждом выборе года и нигде не хранится.
type RiskLookup map[string]RiskLevel

// Level возвращает уровень риска для нормализованного имени или Unknown
func (l RiskLookup) Level(normalizedName string) RiskLevel {
	if level, ok := l[normalizedName]; ok && level != "" {
		return level
	}
	return RiskUnknown
}

// RiskLookupReport - lookup плюс ключи, перезаписанные более поздними строками
type RiskLookupReport struct {
	Lookup     RiskLookup
	Duplicates []string
}

// BuildRiskLookup строит lookup для колонки "<year>_risk".
// Для одного и того же нормализованного имени выигрывает последняя строка.
func BuildRiskLookup(table RiskTable, year string) RiskLookup {
	return BuildRiskLookupReport(table, year).Lookup
}

// BuildRiskLookupReport строит lookup и дополнительно собирает ключи-дубликаты,
// чтобы вызывающий код мог о них предупредить. Поведение last-wins не меняется.
func BuildRiskLookupReport(table RiskTable, year string) RiskLookupReport {
	column := RiskColumn(year)
	lookup := make(RiskLookup)
	duplicates := make([]string, 0)

	for _, row := range table.Rows {
		city, ok := row.Get(CityColumn)
		if !ok || city == "" {
			continue
		}
		raw, ok := row.Get(column)
		if !ok || raw == "" {
			continue
		}

		key := NormalizeName(city)
		if _, exists := lookup[key]; exists {
			duplicates = append(duplicates, key)
		}
		lookup[key] = canonicalRisk(raw)
	}

	return RiskLookupReport{Lookup: lookup, Duplicates: duplicates}
}

// canonicalRisk обрезает пробелы и исправляет регистр только для "very high":
// это известная несогласованность в исходных данных. Остальные значения
// сохраняются как есть.
func canonicalRisk(raw string) RiskLevel {
	risk := trimBlank(raw)
	if strings.EqualFold(risk, string(RiskVeryHigh)) {
		return RiskVeryHigh
	}
	return RiskLevel(risk)
}
