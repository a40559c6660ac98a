package report

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// counts formats numbers with thousands grouping; a two-hour lapse is
// north of ten thousand frames.
var counts = message.NewPrinter(language.English)

// Render writes the end-of-run summary to w. A terminal gets a
// rounded table, anything else plain lines.
func Render(w io.Writer, s *Summary) {
	if isTerminal(w) {
		renderTable(w, s)
		return
	}
	renderPlain(w, s)
}

func renderTable(w io.Writer, s *Summary) {
	if len(s.Sequences) > 0 {
		tw := table.NewWriter()
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"SEQUENCE", "CAMERA", "FILES", "SIZE", "MOVIE"})
		for _, line := range s.Sequences {
			tw.AppendRow(table.Row{
				line.Name,
				fmt.Sprintf("%03d", line.Device),
				filesCell(line),
				FormatSize(line.Bytes),
				line.Movie,
			})
		}
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
			{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		})
		fmt.Fprintln(w, tw.Render())
	}
	renderTotals(w, s)
}

func renderPlain(w io.Writer, s *Summary) {
	for _, line := range s.Sequences {
		fmt.Fprintf(w, "%s  camera %03d  %s  %s",
			line.Name, line.Device, filesCell(line), FormatSize(line.Bytes))
		if line.Movie != "" {
			fmt.Fprintf(w, "  movie %s", line.Movie)
		}
		fmt.Fprintln(w)
	}
	renderTotals(w, s)
}

func renderTotals(w io.Writer, s *Summary) {
	verb := "moved"
	if s.DryRun {
		verb = "would move"
	}
	counts.Fprintf(w, "%d files %s (%s), %d skipped\n", s.Moved, verb, FormatSize(s.Bytes), s.Skipped)

	if attempted := s.Movies + s.MoviesFailed + s.MoviesSkipped; attempted > 0 {
		verb = "assembled"
		if s.DryRun {
			verb = "would assemble"
		}
		counts.Fprintf(w, "%d movies %s\n", s.Movies, verb)
	}

	if errs := s.Failed + s.MoviesFailed; errs > 0 {
		counts.Fprintf(w, "%d errors\n", errs)
	}
}

func filesCell(line SequenceLine) string {
	cell := counts.Sprintf("%d", line.Moved)
	if line.Failed > 0 {
		cell += fmt.Sprintf(" (%d failed)", line.Failed)
	}
	return cell
}

// FormatSize renders a byte count in human units.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
