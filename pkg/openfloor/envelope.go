// Package openfloor implements a client for the Open Floor protocol,
// an interoperability protocol in which conversational agents exchange
// JSON envelopes describing conversation events.
// Specification: https://github.com/open-voice-interoperability/openfloor-docs
package openfloor

import (
	"fmt"
)

// ============================================================================
// ENVELOPE - Outbound Protocol Messages
// ============================================================================

// Recognized event kinds. The manifest announcement has two surface names
// in the wild; both are accepted as synonyms on inbound envelopes.
const (
	EventGetManifests     = "getManifests"
	EventPublishManifests = "publishManifests"
	EventPublishManifest  = "publishManifest"
	EventUtterance        = "utterance"
)

// Conversation identifies the dialog an envelope belongs to.
type Conversation struct {
	ID string `json:"id"`
}

// Sender identifies the participant that produced an envelope.
type Sender struct {
	SpeakerURI string `json:"speakerUri"`
}

// To addresses an event to a target agent's service endpoint.
type To struct {
	ServiceURL string `json:"serviceUrl"`
}

// TextFeature carries textual dialog content. Outbound features always use
// a single-element value list; inbound features may arrive in other shapes
// (see response.go).
type TextFeature struct {
	Values []string `json:"values"`
}

// DialogEvent is the dialog content of an utterance: who spoke and the
// features (keyed by feature name, "text" being the only one this client
// produces).
type DialogEvent struct {
	SpeakerURI string                 `json:"speakerUri"`
	Features   map[string]TextFeature `json:"features"`
}

// EventParameters holds the variant-specific parameters of an event.
// A capability discovery request carries no parameters at all.
type EventParameters struct {
	DialogEvent *DialogEvent `json:"dialogEvent,omitempty"`
}

// Event is a single typed protocol action addressed to a target agent.
type Event struct {
	EventType  string          `json:"eventType"`
	To         To              `json:"to"`
	Parameters EventParameters `json:"parameters"`
}

// Envelope is the outer protocol message wrapping sender and conversation
// identity around an ordered sequence of events. The protocol delivers
// events to the receiver in the given order.
type Envelope struct {
	Conversation Conversation `json:"conversation"`
	Sender       Sender       `json:"sender"`
	Events       []Event      `json:"events"`
}

// payload is the wire shape of an HTTP POST body: the envelope nested under
// the protocol's top-level key.
type payload struct {
	OpenFloor Envelope `json:"openFloor"`
}

// NewEnvelope builds an outbound envelope from a non-empty event sequence.
// Event order is preserved exactly.
func NewEnvelope(speakerURI, conversationID string, events []Event) (*Envelope, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: envelope requires at least one event", ErrInvalidArgument)
	}

	return &Envelope{
		Conversation: Conversation{ID: conversationID},
		Sender:       Sender{SpeakerURI: speakerURI},
		Events:       append([]Event(nil), events...),
	}, nil
}

// NewGetManifestsEvent builds a capability discovery request asking the
// agent at targetURL to publish its manifests.
func NewGetManifestsEvent(targetURL string) Event {
	return Event{
		EventType: EventGetManifests,
		To:        To{ServiceURL: targetURL},
	}
}

// NewUtteranceEvent builds a single-turn utterance carrying text, spoken by
// speakerURI and addressed to the agent at targetURL.
func NewUtteranceEvent(speakerURI, targetURL, text string) (Event, error) {
	if text == "" {
		return Event{}, fmt.Errorf("%w: utterance text is empty", ErrInvalidArgument)
	}

	return Event{
		EventType: EventUtterance,
		To:        To{ServiceURL: targetURL},
		Parameters: EventParameters{
			DialogEvent: &DialogEvent{
				SpeakerURI: speakerURI,
				Features: map[string]TextFeature{
					"text": {Values: []string{text}},
				},
			},
		},
	}, nil
}
