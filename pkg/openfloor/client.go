package openfloor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// OPEN FLOOR CLIENT - HTTP+JSON Transport Client
// ============================================================================

// DefaultTimeout bounds the blocking wait for an agent's response.
const DefaultTimeout = 30 * time.Second

// Client is an Open Floor protocol client. Its speaker and conversation
// identities are established at construction, never mutate, and are safe to
// share across calls; each operation is an independent request/reply
// transaction with no cross-call state.
type Client struct {
	httpClient     *http.Client
	speakerURI     string
	conversationID string
}

// ClientConfig contains configuration for the Open Floor client. Explicit
// identities make tests deterministic; unset fields are generated.
type ClientConfig struct {
	Timeout        time.Duration
	SpeakerURI     string
	ConversationID string
}

// NewClient creates a new Open Floor protocol client.
func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	speakerURI := cfg.SpeakerURI
	if speakerURI == "" {
		speakerURI = "client:" + shortID()
	}

	conversationID := cfg.ConversationID
	if conversationID == "" {
		conversationID = "conv_" + shortID()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		speakerURI:     speakerURI,
		conversationID: conversationID,
	}
}

// shortID returns an 8-hex-char random identifier.
func shortID() string {
	return uuid.NewString()[:8]
}

// SpeakerURI returns the client's process-lifetime-stable speaker identity.
func (c *Client) SpeakerURI() string {
	return c.speakerURI
}

// ConversationID returns the client's process-lifetime-stable conversation
// identity.
func (c *Client) ConversationID() string {
	return c.conversationID
}

// ============================================================================
// TRANSPORT
// ============================================================================

// Exchange serializes the envelope under the protocol's top-level key,
// performs exactly one POST to targetURL, and returns the verified JSON
// response body without interpreting it. Transport faults and non-2xx
// statuses surface as *NetworkError; a 2xx non-JSON body surfaces as
// *MalformedResponseError. Retry policy, if any, belongs to the caller.
func (c *Client) Exchange(ctx context.Context, envelope *Envelope, targetURL string) (RawResponse, error) {
	body, err := json.Marshal(payload{OpenFloor: *envelope})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: targetURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: targetURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &NetworkError{
			URL:        targetURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s: %s", resp.Status, bytes.TrimSpace(respBody)),
		}
	}

	if !json.Valid(respBody) {
		return nil, &MalformedResponseError{URL: targetURL, Err: errors.New("body is not valid JSON")}
	}

	return RawResponse(respBody), nil
}

// ============================================================================
// HIGH-LEVEL OPERATIONS
// ============================================================================

// DiscoverCapabilities asks the agent at agentURL to publish its manifests
// and returns them. An agent that responds conformantly but declares no
// capabilities yields an empty slice, not an error.
func (c *Client) DiscoverCapabilities(ctx context.Context, agentURL string) ([]Manifest, error) {
	envelope, err := NewEnvelope(c.speakerURI, c.conversationID, []Event{
		NewGetManifestsEvent(agentURL),
	})
	if err != nil {
		return nil, err
	}

	raw, err := c.Exchange(ctx, envelope, agentURL)
	if err != nil {
		return nil, err
	}

	return ExtractManifests(raw)
}

// ExchangeUtterance sends one turn of dialog text to the agent at agentURL
// and returns its reply. replied is false when the agent chose not to reply
// at all; an empty reply returns ("", true).
func (c *Client) ExchangeUtterance(ctx context.Context, agentURL, text string) (reply string, replied bool, err error) {
	event, err := NewUtteranceEvent(c.speakerURI, agentURL, text)
	if err != nil {
		return "", false, err
	}

	envelope, err := NewEnvelope(c.speakerURI, c.conversationID, []Event{event})
	if err != nil {
		return "", false, err
	}

	raw, err := c.Exchange(ctx, envelope, agentURL)
	if err != nil {
		return "", false, err
	}

	return ExtractReplyText(raw)
}
