package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "mvnscan/internal/model"
)

var summaryStyle = lipgloss.NewStyle().Bold(true)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayModel prints the merged project model and its provenance markers.
func (s *SimpleUI) DisplayModel(ctx context.Context, model *m.ProjectModel) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	coords := model.Coordinates
	s.printf("%s\n", summaryStyle.Render(fmt.Sprintf("%s:%s:%s", coords.Group, coords.Artifact, coords.Version)))

	if model.Packaging != "" {
		s.printf("packaging\t%s\n", model.Packaging)
	}

	if len(model.Modules) > 0 {
		s.printf("modules\t%d\n", len(model.Modules))
	}

	for _, marker := range model.Markers.All() {
		s.printf("marker\t%s\t%s\n", marker.Kind(), describeMarker(marker))
	}

	return nil
}

// DisplayUnits renders the tagged source units as a table with a summary
// footer.
func (s *SimpleUI) DisplayUnits(ctx context.Context, units []m.SourceUnit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderUnitsTable(units))
	s.printf("%s\n", summaryStyle.Render(fmt.Sprintf("%d source units", len(units))))

	return nil
}

func renderUnitsTable(units []m.SourceUnit) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Path", "Source Set", "Generated", "Markers"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	generatedCount := 0

	for _, unit := range units {
		sourceSet := ""
		if marker, ok := unit.Markers.Get(m.MarkerSourceSet); ok {
			sourceSet = marker.(m.SourceSet).Name
		}

		generated := ""
		if _, ok := unit.Markers.Get(m.MarkerGenerated); ok {
			generated = "yes"
			generatedCount++
		}

		table.Append([]string{
			string(unit.Path), sourceSet, generated, fmt.Sprintf("%d", unit.Markers.Len()),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(units)),
		"", fmt.Sprintf("%d", generatedCount), "",
	})

	table.Render()

	return buf.String()
}

func describeMarker(marker m.Marker) string {
	switch v := marker.(type) {
	case m.BuildTool:
		return fmt.Sprintf("%s %s", v.Tool, v.Version)
	case m.LanguageVersion:
		return fmt.Sprintf("%s (%s) source=%s target=%s", v.RuntimeVersion, v.Vendor, v.SourceCompatibility, v.TargetCompatibility)
	case m.Coordinates:
		return fmt.Sprintf("%s:%s:%s", v.Group, v.Artifact, v.Version)
	case m.SourceSet:
		return fmt.Sprintf("%s (%d classpath entries)", v.Name, len(v.Classpath))
	case m.Vcs:
		return fmt.Sprintf("%s@%s", v.Branch, v.Commit)
	default:
		return string(marker.Kind())
	}
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}
