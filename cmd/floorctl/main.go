// Command floorctl is a CLI client for Open Floor protocol agents.
//
// Usage:
//
//	floorctl manifest http://localhost:3000/
//	floorctl send parrot "hello there"
//	floorctl chat parrot
package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/alecthomas/kong"

	"github.com/openfloor-dev/floorctl/pkg/config"
	"github.com/openfloor-dev/floorctl/pkg/openfloor"
)

// DefaultConfigFile is picked up from the working directory when --config
// is not given.
const DefaultConfigFile = "floorctl.yaml"

// CLI defines the command-line interface.
type CLI struct {
	Version  VersionCmd  `cmd:"" help:"Show version information."`
	Manifest ManifestCmd `cmd:"" help:"Fetch and display an agent's capability manifests."`
	Send     SendCmd     `cmd:"" help:"Send a single utterance and print the reply."`
	Chat     ChatCmd     `cmd:"" help:"Start an interactive chat session with an agent."`
	Validate ValidateCmd `cmd:"" help:"Validate the configuration file."`
	Schema   SchemaCmd   `cmd:"" help:"Generate JSON Schema for the configuration file."`

	Config    string `short:"c" help:"Path to config file." type:"path"`
	Timeout   string `help:"Exchange timeout as a Go duration (e.g. 30s)."`
	LogLevel  string `help:"Log level (debug, info, warn, error)."`
	LogFile   string `help:"Log file path (empty = stderr)."`
	LogFormat string `help:"Log format (simple or verbose)."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("floorctl version %s\n", version)
	return nil
}

// ValidateCmd validates the configuration file.
type ValidateCmd struct{}

func (c *ValidateCmd) Run(cli *CLI) error {
	path := cli.Config
	if path == "" {
		path = DefaultConfigFile
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("✅ %s is valid\n", path)
	fmt.Printf("   Agents:  %d configured\n", len(cfg.Agents))
	if cfg.DefaultAgent != "" {
		fmt.Printf("   Default: %s\n", cfg.DefaultAgent)
	}
	return nil
}

// loadConfig loads the config file named by --config, falling back to
// ./floorctl.yaml when present, and to the zero configuration otherwise.
func loadConfig(cli *CLI) (*config.Config, error) {
	if cli.Config != "" {
		return config.LoadFile(cli.Config)
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return config.LoadFile(DefaultConfigFile)
	}
	return config.Default(), nil
}

// newClient builds the protocol client from config plus CLI overrides.
func newClient(cli *CLI, cfg *config.Config) (*openfloor.Client, error) {
	timeout := cfg.TimeoutOrDefault(openfloor.DefaultTimeout)
	if cli.Timeout != "" {
		d, err := time.ParseDuration(cli.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid --timeout: %w", err)
		}
		timeout = d
	}

	return openfloor.NewClient(&openfloor.ClientConfig{
		Timeout:        timeout,
		SpeakerURI:     cfg.SpeakerURI,
		ConversationID: cfg.ConversationID,
	}), nil
}

func main() {
	_ = config.LoadDotEnv()

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("floorctl"),
		kong.Description("floorctl - CLI client for Open Floor protocol agents"),
		kong.UsageOnError(),
	)

	cleanup, err := initLoggerFromCLI(cli.LogLevel, cli.LogFile, cli.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	err = ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
