package main

import (
	"fmt"
	"os"

	"lineheat/internal/config"
	"lineheat/internal/heatmap"
	"lineheat/internal/report"
	"lineheat/internal/tui"
	"lineheat/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

var (
	errColor = color.New(color.FgRed, color.Bold)
	okColor  = color.New(color.FgGreen)
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "lineheat",
		Repository: "lineheat",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/lineheat/lineheat/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lineheat [options] REPORT\n\n")
		fmt.Fprintf(os.Stderr, "lineheat renders a per-line execution heatmap from a profiling report.\n")
		fmt.Fprintf(os.Stderr, "REPORT is a .json or .msgpack report produced by your profiler.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lineheat run.json             # Browse the heatmap in the terminal\n")
		fmt.Fprintf(os.Stderr, "  lineheat -o heat.html run.json  # Write the interactive HTML page\n")
		fmt.Fprintf(os.Stderr, "  lineheat --web run.json       # Serve it on http://localhost:8080\n")
		fmt.Fprintf(os.Stderr, "  lineheat --json run.json      # Print the normalized report as JSON\n")
	}

	htmlFlag := pflag.BoolP("html", "H", false, "Render the interactive HTML page (to stdout unless -o is given)")
	outputFlag := pflag.StringP("output", "o", "", "Write the HTML page to the specified file (implies --html)")
	webFlag := pflag.BoolP("web", "w", false, "Serve the heatmap on a local web server")
	portFlag := pflag.IntP("port", "p", 0, "Web server port (overrides the config file)")
	jsonFlag := pflag.BoolP("json", "j", false, "Output the normalized report and summaries as JSON")
	configFlag := pflag.StringP("config", "c", "", "Path to a lineheat.toml config file")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("lineheat version %s\n", report.Version)
		return
	}

	if *updateFlag {
		checkUpdate(report.Version)
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fail(err)
	}

	if pflag.NArg() < 1 {
		errColor.Fprintln(os.Stderr, "Error: no report file given")
		pflag.Usage()
		os.Exit(2)
	}

	rep, err := report.Load(pflag.Arg(0), cfg.DefaultLanguage)
	if err != nil {
		fail(err)
	}
	scale := cfg.Scale(rep.TotalRunTime)

	if *webFlag {
		port := cfg.Port
		if *portFlag != 0 {
			port = *portFlag
		}
		if err := web.StartServer(rep, scale, port); err != nil {
			fail(err)
		}
		return
	}

	if *htmlFlag || *outputFlag != "" {
		runHTMLMode(rep, scale, *outputFlag)
		return
	}

	if *jsonFlag {
		if err := report.Dump(os.Stdout, rep); err != nil {
			fail(err)
		}
		return
	}

	// Default: TUI
	runTuiMode(rep, scale)
}

func runHTMLMode(rep *report.Report, scale heatmap.Scale, outputFile string) {
	if outputFile == "" || outputFile == "-" {
		if err := heatmap.RenderHTML(os.Stdout, rep, scale); err != nil {
			fail(err)
		}
		return
	}

	f, err := os.Create(outputFile)
	if err != nil {
		fail(fmt.Errorf("failed to create %s: %w", outputFile, err))
	}
	if err := heatmap.RenderHTML(f, rep, scale); err != nil {
		f.Close()
		fail(err)
	}
	if err := f.Close(); err != nil {
		fail(err)
	}
	okColor.Printf("Heatmap saved to %s\n", outputFile)
}

func runTuiMode(rep *report.Report, scale heatmap.Scale) {
	m := tui.InitialModel(rep, scale)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	errColor.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
