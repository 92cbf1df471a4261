package openfloor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================================
// RESPONSE INTERPRETER - Tolerant Decoding of Inbound Envelopes
// ============================================================================

// RawResponse is a verified-JSON response body as returned by the transport,
// prior to any semantic interpretation.
type RawResponse []byte

// Manifest is a peer's self-declared capability description. Manifests are
// pass-through structures: every field is optional and defaulted, and the
// client never validates their completeness.
type Manifest struct {
	Identification Identification `json:"identification"`
	Capabilities   []Capability   `json:"capabilities"`
}

// Identification describes who the peer agent is.
type Identification struct {
	SpeakerURI         string `json:"speakerUri"`
	ConversationalName string `json:"conversationalName"`
	Organization       string `json:"organization"`
	Synopsis           string `json:"synopsis"`
}

// Capability describes one thing the peer agent can do.
type Capability struct {
	Keyphrases   []string `json:"keyphrases"`
	Descriptions []string `json:"descriptions"`
}

// responsePayload mirrors the outbound payload shape. Event parameters stay
// raw here because their shape depends on the event kind and peers vary in
// how faithfully they produce it.
type responsePayload struct {
	OpenFloor *responseEnvelope `json:"openFloor"`
}

type responseEnvelope struct {
	Events []responseEvent `json:"events"`
}

type responseEvent struct {
	EventType  string          `json:"eventType"`
	Parameters json.RawMessage `json:"parameters"`
}

// decodeEnvelope unwraps the top-level protocol key. A response without it
// means the peer is not speaking Open Floor at all, which is reported as
// ErrProtocolMismatch rather than an empty result.
func decodeEnvelope(raw RawResponse) (*responseEnvelope, error) {
	var p responsePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocolMismatch, err)
	}
	if p.OpenFloor == nil {
		return nil, fmt.Errorf("%w: missing top-level \"openFloor\" key", ErrProtocolMismatch)
	}
	return p.OpenFloor, nil
}

// ExtractManifests scans the response's events for a manifest announcement
// (singular and plural event kinds are synonyms) and returns its manifest
// list. The first announcement actually carrying manifests wins; subsequent
// matches are ignored. A conformant response with no announcement, or with
// only empty announcements, yields an empty slice and no error.
func ExtractManifests(raw RawResponse) ([]Manifest, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	for _, ev := range env.Events {
		if ev.EventType != EventPublishManifests && ev.EventType != EventPublishManifest {
			continue
		}

		var params struct {
			ServicingManifests []Manifest `json:"servicingManifests"`
		}
		if len(ev.Parameters) > 0 {
			// An announcement with undecodable parameters degrades to
			// "no manifests declared", not a client failure.
			_ = json.Unmarshal(ev.Parameters, &params)
		}
		if len(params.ServicingManifests) > 0 {
			return params.ServicingManifests, nil
		}
	}

	return []Manifest{}, nil
}

// ExtractReplyText scans the response's events for the first utterance and
// resolves its logical text. ok is false when no utterance event is present
// at all; a peer may legitimately choose not to reply. An utterance that
// resolves to the empty string returns ("", true), which is observably
// distinct from the no-reply case.
func ExtractReplyText(raw RawResponse) (text string, ok bool, err error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return "", false, err
	}

	for _, ev := range env.Events {
		if ev.EventType != EventUtterance {
			continue
		}
		return resolveUtteranceText(ev.Parameters), true, nil
	}

	return "", false, nil
}

// utteranceParameters is the decoded path down to the text feature of an
// inbound utterance. Feature payloads stay raw until textContent decoding.
type utteranceParameters struct {
	DialogEvent struct {
		Features map[string]json.RawMessage `json:"features"`
	} `json:"dialogEvent"`
}

// resolveUtteranceText descends parameters.dialogEvent.features.text and
// resolves it. Any absent or undecodable level defaults to the empty string.
func resolveUtteranceText(params json.RawMessage) string {
	if len(params) == 0 {
		return ""
	}

	var p utteranceParameters
	if err := json.Unmarshal(params, &p); err != nil {
		return ""
	}

	raw, found := p.DialogEvent.Features["text"]
	if !found {
		return ""
	}

	var content textContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return ""
	}
	return content.resolve()
}

// textContent is the decoded sum of the three inbound text representations:
// a flat value list, a token stream, or a single scalar value.
type textContent struct {
	Values []string
	Tokens []token
	Scalar json.RawMessage
}

type token struct {
	Value *string `json:"value"`
}

// UnmarshalJSON decodes each representation independently so that one
// malformed field does not discard the others.
func (t *textContent) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	// Unmarshal can leave partially decoded slices behind on error, so a
	// representation that fails to decode is reset to absent.
	if raw, found := fields["values"]; found {
		if err := json.Unmarshal(raw, &t.Values); err != nil {
			t.Values = nil
		}
	}
	if raw, found := fields["tokens"]; found {
		if err := json.Unmarshal(raw, &t.Tokens); err != nil {
			t.Tokens = nil
		}
	}
	if raw, found := fields["value"]; found {
		t.Scalar = append(json.RawMessage(nil), raw...)
	}
	return nil
}

// resolve picks the logical string with fixed precedence, each representation
// tried only when the prior one is absent:
//
//  1. non-empty values list: its first element
//  2. non-empty tokens list: concatenation of token values in order, tokens
//     lacking the field skipped, empty strings preserved
//  3. scalar value: its string form, "" when absent
func (t *textContent) resolve() string {
	if len(t.Values) > 0 {
		return t.Values[0]
	}

	if len(t.Tokens) > 0 {
		var b strings.Builder
		for _, tok := range t.Tokens {
			if tok.Value != nil {
				b.WriteString(*tok.Value)
			}
		}
		return b.String()
	}

	return scalarString(t.Scalar)
}

// scalarString renders a scalar "value" field as text. Non-string scalars
// keep their JSON literal form; absent and null resolve to "".
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}
