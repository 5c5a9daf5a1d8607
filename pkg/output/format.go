// Package output provides utilities for formatting and displaying peak
// tables from simulation runs.
package output

import (
	"fmt"
	"strings"

	"github.com/gc-tools/chromsim/internal/simulate"
	"github.com/gc-tools/chromsim/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
// Retention time and resolution print at 2 decimals, width and intensities
// at 3; the first record's resolution prints as "-".
func PrettyFormat(run *simulate.Run) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Peak table (%s mode) ---\n", run.Mode)
	fmt.Printf("Compound     | Retention (min) | Width (min) | Ionic    | Neutral  | Resolution\n")
	fmt.Printf("________     | _______________ | ___________ | _____    | _______  | __________\n")
	for _, peak := range run.Peaks {
		resolution := "-"
		if peak.Resolution != nil {
			resolution = fmt.Sprintf("%.2f", mathutil.Round2(*peak.Resolution))
		}
		_, _ = p.Printf("%-12s | %15.2f | %11.3f | %8.3f | %8.3f | %s\n",
			peak.Compound, mathutil.Round2(peak.RetentionTime), mathutil.Round3(peak.Width),
			mathutil.Round3(peak.IonicIntensity), mathutil.Round3(peak.NeutralIntensity), resolution)
	}
}

// CsvString renders the peak table in comma-separated value format.
func CsvString(run *simulate.Run) string {
	var sb strings.Builder
	sb.WriteString(`"compound","retention_time_min","width_min","ionic_intensity","neutral_intensity","resolution_vs_previous"` + "\n")
	for _, peak := range run.Peaks {
		resolution := ""
		if peak.Resolution != nil {
			resolution = fmt.Sprintf("%.2f", mathutil.Round2(*peak.Resolution))
		}
		sb.WriteString(fmt.Sprintf(`"%s","%.2f","%.3f","%.3f","%.3f","%s"`+"\n",
			peak.Compound, mathutil.Round2(peak.RetentionTime), mathutil.Round3(peak.Width),
			mathutil.Round3(peak.IonicIntensity), mathutil.Round3(peak.NeutralIntensity), resolution))
	}
	return sb.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(run *simulate.Run) {
	fmt.Print(CsvString(run))
}
