package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/openfloor-dev/floorctl/pkg/openfloor"
)

// ============================================================================
// INTERACTIVE CHAT
// ============================================================================

// runChat reads utterances from stdin and exchanges them one turn at a time
// until /quit, EOF, or context cancellation.
func runChat(ctx context.Context, client *openfloor.Client, agentURL string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("\n💬 Chatting with %s\n", agentURL)
	fmt.Println("Type your messages below. Commands:")
	fmt.Println("  /quit or /exit - End chat session")
	fmt.Println()

	for {
		if ctx.Err() != nil {
			fmt.Println("\n👋 Chat session ended")
			return nil
		}

		fmt.Print("You: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("\n👋 Chat session ended")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			switch input {
			case "/quit", "/exit":
				fmt.Println("\n👋 Chat session ended")
				return nil
			default:
				fmt.Printf("Unknown command: %s\n", input)
				continue
			}
		}

		reply, replied, err := client.ExchangeUtterance(ctx, agentURL, input)
		if err != nil {
			// One failed turn does not end the session.
			fmt.Printf("❌ Error: %v\n\n", err)
			continue
		}

		if !replied {
			fmt.Println("Agent: (no reply)")
			continue
		}
		fmt.Printf("Agent: %s\n", reply)
	}
}
