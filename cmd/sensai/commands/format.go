package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wonny/sensai/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// PrintHeader prints a formatted command header
func PrintHeader(title string, fields [][2]string) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %s\n", title)
	PrintSeparator()
	for _, f := range fields {
		fmt.Printf("  %-10s: %s\n", f[0], f[1])
	}
	PrintSeparator()
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println()
	fmt.Printf("⚠️  %s\n", message)
	fmt.Println()
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Printf("ℹ️  %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(columns []string, widths []int) {
	PrintTableRow(columns, widths)

	// Separator line
	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Println(strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Printf("   %-*s : %s\n", keyWidth, key, value)
}

// formatFloat renders a number with two decimals; non-finite values print as NaN/+Inf/-Inf
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

var pickColumns = []string{"#", "POS", "PLAYER", "PRICE", "AVG", "C/B"}
var pickWidths = []int{3, 3, 24, 8, 8, 8}

// PrintPicks prints players as a table
func PrintPicks(picks []contracts.Pick) {
	PrintTableHeader(pickColumns, pickWidths)
	for i, p := range picks {
		name := p.Name
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		PrintTableRow([]string{
			strconv.Itoa(i + 1),
			string(p.Position),
			name,
			formatFloat(float64(p.Price)),
			formatFloat(float64(p.AvgPoints)),
			formatFloat(float64(p.CostBenefit)),
		}, pickWidths)
	}
}

// PrintStats prints describe()-style statistics of one column
func PrintStats(label string, s contracts.Stats) {
	fmt.Printf("  %s (n=%d)\n", label, s.Count)
	PrintKeyValue("mean", formatFloat(float64(s.Mean)), 5)
	PrintKeyValue("std", formatFloat(float64(s.Std)), 5)
	PrintKeyValue("min", formatFloat(float64(s.Min)), 5)
	PrintKeyValue("25%", formatFloat(float64(s.P25)), 5)
	PrintKeyValue("50%", formatFloat(float64(s.P50)), 5)
	PrintKeyValue("75%", formatFloat(float64(s.P75)), 5)
	PrintKeyValue("max", formatFloat(float64(s.Max)), 5)
}
