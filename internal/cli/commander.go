package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/bentzi-tabak/hncollector/internal/analyzer"
	"github.com/bentzi-tabak/hncollector/internal/config"
	"github.com/bentzi-tabak/hncollector/internal/models"
	"github.com/bentzi-tabak/hncollector/internal/pipeline"
	"github.com/bentzi-tabak/hncollector/internal/storage"
)

type Commander struct {
	pipeline *pipeline.Pipeline
	store    *storage.Store
	config   *config.Config

	lastRun *models.RunResult

	green  func(a ...interface{}) string
	red    func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	blue   func(a ...interface{}) string
}

func NewCommander(cfg *config.Config) *Commander {
	return &Commander{
		pipeline: pipeline.New(cfg),
		store:    storage.NewStore(cfg.Output.DataDir),
		config:   cfg,
		green:    color.New(color.FgGreen).SprintFunc(),
		red:      color.New(color.FgRed).SprintFunc(),
		yellow:   color.New(color.FgYellow).SprintFunc(),
		cyan:     color.New(color.FgCyan).SprintFunc(),
		blue:     color.New(color.FgBlue).SprintFunc(),
	}
}

func (c *Commander) ExecuteCommand(command string, args []string) {
	switch command {
	case "help", "h":
		c.showHelp()
	case "run", "r":
		c.runPipeline(c.storiesArg(args))
	case "fetch", "f":
		c.fetchOnly(c.storiesArg(args))
	case "analyze", "analyse", "a":
		c.analyzeOnly()
	case "show":
		limit := 10
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				limit = n
			}
		}
		c.showStories(limit)
	case "status":
		c.showStatus()
	case "clear":
		c.clearScreen()
	case "quit", "exit", "q":
		c.quit()
	default:
		fmt.Printf("%s Unknown command: %s\n", c.red("✗"), command)
		fmt.Println("Type 'help' for available commands")
	}
}

func (c *Commander) storiesArg(args []string) int {
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			return n
		}
	}
	return c.config.App.Stories
}

func (c *Commander) showHelp() {
	fmt.Println(c.blue("\nAvailable Commands:"))
	fmt.Println("\n" + c.cyan("Pipeline:"))
	fmt.Println("  run [n]      - Collect n top stories and analyze them")
	fmt.Println("  fetch [n]    - Collect only, no analysis")
	fmt.Println("  analyze      - Analyze previously collected tables")

	fmt.Println("\n" + c.cyan("Data:"))
	fmt.Println("  show [n]     - Show n stories from the last collection")
	fmt.Println("  status       - Show output file status")

	fmt.Println("\n" + c.cyan("Basic:"))
	fmt.Println("  help         - Show this help message")
	fmt.Println("  clear        - Clear screen")
	fmt.Println("  quit         - Exit program")
}

func (c *Commander) runPipeline(numStories int) {
	fmt.Printf(c.cyan("Collecting and analyzing top %d stories...\n"), numStories)

	result, report, err := c.pipeline.Run(context.Background(), numStories)
	if err != nil {
		fmt.Printf("%s Error: %v\n", c.red("✗"), err)
		return
	}

	c.lastRun = result
	c.printRunResult(result)
	c.printReport(report)
}

func (c *Commander) fetchOnly(numStories int) {
	fmt.Printf(c.cyan("Collecting top %d stories...\n"), numStories)

	result, err := c.pipeline.Collect(context.Background(), numStories)
	if err != nil {
		fmt.Printf("%s Error: %v\n", c.red("✗"), err)
		return
	}

	c.lastRun = result
	c.printRunResult(result)
}

func (c *Commander) analyzeOnly() {
	fmt.Println(c.cyan("Analyzing collected tables..."))

	report, err := c.pipeline.Analyze()
	if err != nil {
		fmt.Printf("%s Error: %v\n", c.red("✗"), err)
		return
	}

	c.printReport(report)
}

func (c *Commander) printRunResult(result *models.RunResult) {
	fmt.Println(c.green("\n✓ Collection Complete!"))
	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("Duration:         %.2f seconds\n", result.Duration.Seconds())
	fmt.Printf("Stories:          %d of %d requested\n", result.StoriesFetched, result.StoriesRequested)
	fmt.Printf("Comments:         %d\n", result.CommentsFetched)

	if result.SkippedItems > 0 {
		fmt.Printf("Skipped items:    %s\n", c.yellow(fmt.Sprintf("%d", result.SkippedItems)))
	}
}

func (c *Commander) printReport(report *analyzer.Report) {
	fmt.Println(c.blue("\nAnalysis Results"))
	fmt.Println(strings.Repeat("─", 50))

	fmt.Printf("Stories analyzed:        %d\n", report.StoryCount)
	fmt.Printf("Average score:           %.2f\n", report.AvgScore)
	fmt.Printf("Average comments:        %.2f\n", report.AvgComments)
	fmt.Printf("Avg time to front page:  %.2f hours\n", report.AvgAgeHours)
	fmt.Printf("External links:          %.1f%%\n", report.ExternalLinksPct)
	fmt.Printf("Self posts:              %.1f%%\n", report.SelfPostsPct)

	if len(report.Keywords) > 0 {
		fmt.Println(c.cyan("\nTop Keywords:"))
		for i, kw := range report.Keywords {
			fmt.Printf("%2d. %s (%d)\n", i+1, kw.Keyword, kw.Count)
		}
	}

	if report.CommentCount > 0 {
		fmt.Println(c.cyan("\nComment Analysis:"))
		fmt.Printf("Comments analyzed:       %d\n", report.CommentCount)
		fmt.Printf("Average length:          %.2f characters\n", report.AvgCommentLength)
		fmt.Printf("Median length:           %.2f characters\n", report.MedianCommentLength)
		fmt.Printf("Comments with links:     %.2f%%\n", report.CommentsWithLinksPct)
		for _, sc := range report.Sentiments {
			fmt.Printf("%-24s %d\n", sc.Label+":", sc.Count)
		}
	}

	fmt.Println(c.cyan("\nCorrelation:"))
	fmt.Printf("Score vs comments:       %.3f\n", report.Correlation)
	fmt.Printf("   → %s\n", analyzer.InterpretCorrelation(report.Correlation))

	fmt.Printf("\n%s Metrics saved, %d charts rendered\n", c.green("✓"), len(report.ChartFiles))
}

func (c *Commander) showStories(limit int) {
	stories, err := c.store.ReadStories()
	if err != nil {
		fmt.Printf("%s Error: %v (run 'fetch' first)\n", c.red("✗"), err)
		return
	}

	if limit > len(stories) {
		limit = len(stories)
	}

	fmt.Printf(c.blue("\nTop %d Collected Stories:\n"), limit)
	fmt.Println(strings.Repeat("─", 70))

	for _, story := range stories[:limit] {
		title := story.Title
		if len(title) > 60 {
			title = title[:60] + "..."
		}

		fmt.Printf("\n%s %s\n", c.green("+"), title)
		fmt.Printf("  by %s | %d points | %d comments\n",
			story.Author, story.Score, story.CommentsCount)
	}
}

func (c *Commander) showStatus() {
	fmt.Println(c.blue("\nSystem Status"))
	fmt.Println(strings.Repeat("─", 40))

	fmt.Printf("Output directory: %s\n", c.config.Output.DataDir)

	for _, path := range []string{c.store.StoriesPath(), c.store.CommentsPath(), c.store.MetricsPath()} {
		if info, err := os.Stat(path); err == nil {
			fmt.Printf("%-30s %s (%d bytes)\n", path, c.green("●"), info.Size())
		} else {
			fmt.Printf("%-30s %s\n", path, c.red("○ missing"))
		}
	}

	if c.lastRun != nil {
		fmt.Printf("Last run:         %d stories, %d comments in %.2fs\n",
			c.lastRun.StoriesFetched, c.lastRun.CommentsFetched, c.lastRun.Duration.Seconds())
	}
}

func (c *Commander) clearScreen() {
	fmt.Print("\033[H\033[2J")
	PrintWelcome(c.config)
}

func (c *Commander) quit() {
	fmt.Printf("%s Goodbye!\n", c.green("✓"))
	os.Exit(0)
}

// PrintWelcome prints the startup banner.
func PrintWelcome(cfg *config.Config) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Println(cyan("╔══════════════════════════════════════════╗"))
	fmt.Println(cyan("║   Hacker News Collector & Analyzer       ║"))
	fmt.Println(cyan("╚══════════════════════════════════════════╝"))
	fmt.Println()
	fmt.Printf("Default story count: %d\n", cfg.App.Stories)
	fmt.Println("Type 'help' for available commands")
}
