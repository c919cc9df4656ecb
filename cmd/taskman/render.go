//go:build linux

package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/ja7ad/taskman/pkg/model"
	"github.com/ja7ad/taskman/pkg/tree"
)

// Sort keys for list and watch.
const (
	sortPID = "pid"
	sortCPU = "cpu"
	sortMem = "mem"
)

// styles carry the colors for one output stream. The renderer detects
// whether w is a terminal, so piped output stays plain.
type styles struct {
	header lipgloss.Style
	branch lipgloss.Style
	muted  lipgloss.Style
	busy   lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	// tabwriter needs the tabs intact
	base := lipgloss.NewRenderer(w).NewStyle().TabWidth(lipgloss.NoTabConversion)
	if !color {
		return styles{header: base, branch: base, muted: base, busy: base}
	}
	return styles{
		header: base.Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		branch: base.Foreground(lipgloss.Color("#7C3AED")),
		muted:  base.Foreground(lipgloss.Color("#6B7280")),
		busy:   base.Foreground(lipgloss.Color("#EF4444")),
	}
}

func sortSamples(samples []model.ProcessSample, by string) error {
	switch by {
	case sortPID, "":
		slices.SortFunc(samples, func(a, b model.ProcessSample) int { return cmp.Compare(a.PID, b.PID) })
	case sortCPU:
		slices.SortStableFunc(samples, func(a, b model.ProcessSample) int {
			return cmp.Or(cmp.Compare(b.CPUPercent, a.CPUPercent), cmp.Compare(a.PID, b.PID))
		})
	case sortMem:
		slices.SortStableFunc(samples, func(a, b model.ProcessSample) int {
			return cmp.Or(cmp.Compare(b.MemoryMB, a.MemoryMB), cmp.Compare(a.PID, b.PID))
		})
	default:
		return fmt.Errorf("unknown sort key %q (want pid, cpu or mem)", by)
	}
	return nil
}

func formatMemory(mb float64) string {
	if mb >= 1024 {
		return fmt.Sprintf("%.1fG", mb/1024)
	}
	return fmt.Sprintf("%.1fM", mb)
}

func renderTable(w io.Writer, samples []model.ProcessSample, st styles) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, st.header.Render("PID\tPPID\tNAME\tSTATE\tOWNER\tCPU%\tMEM\tPATH"))
	for _, p := range samples {
		cpu := fmt.Sprintf("%.1f", p.CPUPercent)
		if p.CPUPercent >= 50 {
			cpu = st.busy.Render(cpu)
		}
		path := p.ExecutablePath
		if !p.Has(model.FieldPath) {
			path = st.muted.Render(path)
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.PID, p.ParentPID, p.Name, p.Status, p.Owner, cpu, formatMemory(p.MemoryMB), path)
	}
	return tw.Flush()
}

func renderTree(w io.Writer, rows []tree.Row, st styles) error {
	var b strings.Builder
	for _, r := range rows {
		if r.Depth > 0 {
			b.WriteString(strings.Repeat("  ", r.Depth-1))
			b.WriteString(st.branch.Render("└─ "))
		}
		fmt.Fprintf(&b, "%s %s\n", r.Sample.Name, st.muted.Render(fmt.Sprintf("(pid %d, %s)", r.Sample.PID, r.Sample.Owner)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderHost(w io.Writer, cpu model.HostCPUSample, mem model.HostMemorySample, st styles) error {
	cpuText := "n/a"
	if cpu.Valid {
		cpuText = fmt.Sprintf("%.1f%%", cpu.UsagePercent)
	}
	memText := "n/a"
	if mem.Valid {
		memText = fmt.Sprintf("%.2f / %.2f GB (%.0f%%)", mem.UsedGB, mem.TotalGB, 100*mem.UsedFraction())
	}
	_, err := fmt.Fprintf(w, "%s %s   %s %s\n",
		st.header.Render("CPU"), cpuText, st.header.Render("MEM"), memText)
	return err
}
