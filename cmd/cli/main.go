package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/bentzi-tabak/hncollector/internal/cli"
	"github.com/bentzi-tabak/hncollector/internal/config"
)

func main() {
	var (
		configFile  = flag.String("config", "configs/config.yaml", "Configuration file path")
		stories     = flag.Int("stories", 0, "Number of top stories to process (overrides config)")
		runFlag     = flag.Bool("run", false, "Collect and analyze, then exit")
		fetchFlag   = flag.Bool("fetch", false, "Collect only, then exit")
		analyzeFlag = flag.Bool("analyze", false, "Analyze previously collected tables, then exit")
	)
	flag.Parse()

	if err := loadConfig(*configFile); err != nil {
		log.Printf("Warning: Could not load config file %s: %v", *configFile, err)
		log.Println("Using default configuration")
		config.LoadDefault()
	}

	cfg := config.Get()
	if *stories > 0 {
		cfg.App.Stories = *stories
	}

	commander := cli.NewCommander(cfg)

	if *runFlag {
		commander.ExecuteCommand("run", nil)
		return
	}
	if *fetchFlag {
		commander.ExecuteCommand("fetch", nil)
		return
	}
	if *analyzeFlag {
		commander.ExecuteCommand("analyze", nil)
		return
	}

	cli.PrintWelcome(cfg)
	startInteractiveMode(commander, cfg)
}

func loadConfig(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		execPath, _ := os.Executable()
		execDir := filepath.Dir(execPath)
		altPath := filepath.Join(execDir, path)

		if _, err := os.Stat(altPath); err == nil {
			path = altPath
		} else {
			return fmt.Errorf("config file not found: %s", path)
		}
	}

	return config.Load(path)
}

func startInteractiveMode(commander *cli.Commander, cfg *config.Config) {
	scanner := bufio.NewScanner(os.Stdin)
	prompt := cfg.App.CLI.Prompt
	if prompt == "" {
		prompt = "➜"
	}

	yellow := color.New(color.FgYellow).SprintFunc()

	for {
		fmt.Print(yellow("\n" + prompt + " "))
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())

		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		command := strings.ToLower(parts[0])
		args := parts[1:]

		commander.ExecuteCommand(command, args)
	}
}
