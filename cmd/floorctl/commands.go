package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

// ============================================================================
// PROTOCOL COMMANDS - Manifest Discovery & Utterance Exchange
// ============================================================================

// ManifestCmd fetches and displays an agent's capability manifests.
type ManifestCmd struct {
	Agent string `arg:"" optional:"" help:"Agent URL or configured alias (defaults to default_agent)."`
}

func (c *ManifestCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	agentURL, err := cfg.ResolveAgent(c.Agent)
	if err != nil {
		return err
	}

	client, err := newClient(cli, cfg)
	if err != nil {
		return err
	}

	slog.Info("Requesting manifests", "agent", agentURL)
	manifests, err := client.DiscoverCapabilities(context.Background(), agentURL)
	if err != nil {
		return fmt.Errorf("failed to fetch manifests: %w", err)
	}

	fmt.Print(formatManifests(manifests))
	return nil
}

// SendCmd sends a single utterance and prints the reply.
type SendCmd struct {
	Agent string   `arg:"" help:"Agent URL or configured alias."`
	Text  []string `arg:"" help:"Utterance text."`
}

func (c *SendCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	agentURL, err := cfg.ResolveAgent(c.Agent)
	if err != nil {
		return err
	}

	client, err := newClient(cli, cfg)
	if err != nil {
		return err
	}

	text := strings.Join(c.Text, " ")
	slog.Info("Sending utterance", "agent", agentURL)
	reply, replied, err := client.ExchangeUtterance(context.Background(), agentURL, text)
	if err != nil {
		return fmt.Errorf("failed to exchange utterance: %w", err)
	}

	if !replied {
		fmt.Println("(agent sent no reply)")
		return nil
	}
	fmt.Println(reply)
	return nil
}

// ChatCmd starts an interactive chat session with an agent.
type ChatCmd struct {
	Agent string `arg:"" optional:"" help:"Agent URL or configured alias (defaults to default_agent)."`
}

func (c *ChatCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	agentURL, err := cfg.ResolveAgent(c.Agent)
	if err != nil {
		return err
	}

	client, err := newClient(cli, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	slog.Info("Chat session starting",
		"agent", agentURL,
		"speaker_uri", client.SpeakerURI(),
		"conversation_id", client.ConversationID())

	return runChat(ctx, client, agentURL)
}
