package parser

import (
	"strings"

	"github.com/josephlevy222/xyplot/pkg/xyplot/models"
	"github.com/xuri/excelize/v2"
)

// maxNameDepth bounds the chain of defined names referring to other names.
const maxNameDepth = 8

// DefinedNames returns the workbook's defined names keyed by name. Names
// scoped to a sheet are keyed as "Sheet!Name"; workbook names by their bare
// name.
func DefinedNames(f *excelize.File) map[string]string {
	result := make(map[string]string)

	for _, dn := range f.GetDefinedName() {
		if strings.HasPrefix(strings.ToLower(dn.Name), "_xlnm.") {
			continue
		}
		refersTo := strings.TrimPrefix(strings.TrimSpace(dn.RefersTo), "=")
		if dn.Scope == "" || dn.Scope == "Workbook" {
			result[dn.Name] = refersTo
		} else {
			result[dn.Scope+"!"+dn.Name] = refersTo
		}
	}

	return result
}

// ResolveReference expands a series formula that names a defined name into
// the reference the name stands for. References that are not names are
// returned unchanged, without a leading "=".
func ResolveReference(ref string, names map[string]string) string {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")

	for i := 0; i < maxNameDepth; i++ {
		target, ok := lookupName(ref, names)
		if !ok {
			break
		}
		ref = target
	}

	return ref
}

// lookupName finds ref in names. A workbook-qualified name such as
// "Book1.xlsx!Volts" or "[0]!Volts" falls back to the workbook name.
func lookupName(ref string, names map[string]string) (string, bool) {
	if target, ok := names[ref]; ok {
		return target, true
	}

	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return "", false
	}
	sheet := strings.Trim(ref[:idx], "'")
	name := ref[idx+1:]
	if target, ok := names[sheet+"!"+name]; ok {
		return target, true
	}
	if strings.Contains(name, "$") || !isWorkbookQualifier(sheet) {
		return "", false
	}
	target, ok := names[name]
	return target, ok
}

func isWorkbookQualifier(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "[") || strings.HasSuffix(lower, ".xlsx") ||
		strings.HasSuffix(lower, ".xlsm") || strings.HasSuffix(lower, ".xls")
}

// ParseReference parses a range reference string.
// Format: 'Sheet Name'!$A$1:$D$10, Sheet1!B2, or a parenthesized union
// (Sheet1!$A$1:$A$3,Sheet1!$A$5:$A$7).
func ParseReference(ref string) ([]models.CellRange, bool) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")
	if strings.HasPrefix(ref, "(") && strings.HasSuffix(ref, ")") {
		ref = ref[1 : len(ref)-1]
	}

	var areas []models.CellRange
	for _, part := range splitUnion(ref) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// Split by ! to separate sheet name and range
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			return nil, false
		}
		sheet := unquoteSheet(part[:idx])

		area, ok := parseArea(part[idx+1:])
		if !ok || sheet == "" {
			return nil, false
		}
		area.Sheet = sheet
		areas = append(areas, area)
	}

	return areas, len(areas) > 0
}

// splitUnion splits a union reference on commas outside quoted sheet names.
func splitUnion(ref string) []string {
	var parts []string
	var quoted bool
	start := 0

	for i, r := range ref {
		switch r {
		case '\'':
			quoted = !quoted
		case ',':
			if !quoted {
				parts = append(parts, ref[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, ref[start:])
}

// unquoteSheet removes the quotes around a sheet name, undoubling any
// embedded quote.
func unquoteSheet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") {
		s = strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

// parseArea parses a range string like $A$1:$D$10 or a single cell.
func parseArea(rangeStr string) (models.CellRange, bool) {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) > 2 {
		return models.CellRange{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.CellRange{}, false
	}

	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		if endCol, endRow, err = excelize.CellNameToCoordinates(parts[1]); err != nil {
			return models.CellRange{}, false
		}
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return models.CellRange{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}, true
}
