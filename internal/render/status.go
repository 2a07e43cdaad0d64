// Package render 负责把快照输出到终端
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/syslens/syslens-probe/internal/agent/collector"
)

// 终端颜色
const (
	colorReset  = "\033[0m"
	colorBanner = "\033[1;37;44m"
	colorGreen  = "\033[37;42m"
	colorYellow = "\033[30;43m"
	colorRed    = "\033[37;41m"
)

// 面板着色阈值，与告警阈值相互独立
const (
	usageWarnPercent = 70
	usageCritPercent = 85
	loadWarnScore    = 50
	loadCritScore    = 80
)

// Renderer 将快照渲染为状态面板或JSON
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer 创建渲染器，默认在输出为终端时启用颜色
func NewRenderer(out io.Writer, options ...func(*Renderer)) *Renderer {
	r := &Renderer{
		out:   out,
		color: isTerminal(out),
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// WithColor 强制开启或关闭颜色
func WithColor(enabled bool) func(*Renderer) {
	return func(r *Renderer) {
		r.color = enabled
	}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// JSON 以缩进格式输出快照
func (r *Renderer) JSON(snapshot *collector.SystemSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "    ")
	if err != nil {
		return fmt.Errorf("序列化快照失败: %w", err)
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

// Status 输出状态面板、告警和进程表
func (r *Renderer) Status(snapshot *collector.SystemSnapshot) error {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + r.paint(colorBanner, " "+snapshot.Hostname+" SYSTEM STATUS ") + "\n\n")

	memory := fmt.Sprintf(" Memory: %s%% (%sGB / %sGB) ",
		formatFloat(snapshot.Memory.Percent),
		formatFloat(snapshot.Memory.UsedGB),
		formatFloat(snapshot.Memory.TotalGB))
	disk := fmt.Sprintf(" Disk: %d%% (%s / %s) ", snapshot.Disk.Percent, snapshot.Disk.Used, snapshot.Disk.Total)
	load := fmt.Sprintf(" Load: %s, %s, %s ",
		formatFloat(snapshot.Load[0]),
		formatFloat(snapshot.Load[1]),
		formatFloat(snapshot.Load[2]))

	b.WriteString("  " + r.paint(tierColor(snapshot.Memory.Percent, usageWarnPercent, usageCritPercent), memory))
	b.WriteString("  Uptime: " + snapshot.Uptime + "\n")
	b.WriteString("  " + r.paint(tierColor(float64(snapshot.Disk.Percent), usageWarnPercent, usageCritPercent), disk))
	b.WriteString("  " + r.paint(tierColor(snapshot.Load[0]*10, loadWarnScore, loadCritScore), load) + "\n")

	if len(snapshot.Alerts) > 0 {
		b.WriteString("\n  ALERTS\n")
		for _, a := range snapshot.Alerts {
			color := colorYellow
			if a.Level == collector.LevelCritical {
				color = colorRed
			}
			b.WriteString("  " + r.paint(color, " "+strings.ToUpper(string(a.Level))+" ") + " " + a.Message + "\n")
		}
	}

	b.WriteString("\n  TOP PROCESSES\n")

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return err
	}
	return r.processTable(snapshot.Processes)
}

// processTable 输出进程表
func (r *Renderer) processTable(processes []collector.ProcessInfo) error {
	tw := tabwriter.NewWriter(r.out, 0, 0, 3, ' ', 0)

	fmt.Fprintln(tw, "  Process\tPID\tCPU %\tMem %\tRSS")
	for _, p := range processes {
		fmt.Fprintf(tw, "  %s\t%d\t%s%%\t%s%%\t%s\n",
			p.Command,
			p.PID,
			formatFloat(p.CPU),
			formatFloat(p.Mem),
			collector.FormatBytes(p.RSSKB*1024))
	}

	return tw.Flush()
}

func (r *Renderer) paint(color, text string) string {
	if !r.color {
		return text
	}
	return color + text + colorReset
}

// tierColor 按阈值选择颜色，边界值归入较高档位
func tierColor(value, warn, crit float64) string {
	switch {
	case value >= crit:
		return colorRed
	case value >= warn:
		return colorYellow
	default:
		return colorGreen
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
