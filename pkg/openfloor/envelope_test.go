package openfloor

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewEnvelope_PreservesEventOrder(t *testing.T) {
	events := []Event{
		NewGetManifestsEvent("http://agent-a.example/"),
		NewGetManifestsEvent("http://agent-b.example/"),
		NewGetManifestsEvent("http://agent-c.example/"),
	}

	envelope, err := NewEnvelope("client:test", "conv_test", events)
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}

	if len(envelope.Events) != len(events) {
		t.Fatalf("Expected %d events, got %d", len(events), len(envelope.Events))
	}
	for i, ev := range events {
		if envelope.Events[i].To.ServiceURL != ev.To.ServiceURL {
			t.Errorf("Event %d out of order: expected %s, got %s",
				i, ev.To.ServiceURL, envelope.Events[i].To.ServiceURL)
		}
	}
}

func TestNewEnvelope_CopiesEventSlice(t *testing.T) {
	events := []Event{NewGetManifestsEvent("http://agent.example/")}

	envelope, err := NewEnvelope("client:test", "conv_test", events)
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}

	events[0].To.ServiceURL = "http://mutated.example/"
	if envelope.Events[0].To.ServiceURL != "http://agent.example/" {
		t.Error("Envelope shares backing array with caller's event slice")
	}
}

func TestNewEnvelope_EmptyEvents(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
	}{
		{name: "nil slice", events: nil},
		{name: "empty slice", events: []Event{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEnvelope("client:test", "conv_test", tt.events)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestNewGetManifestsEvent(t *testing.T) {
	event := NewGetManifestsEvent("http://agent.example/")

	if event.EventType != EventGetManifests {
		t.Errorf("Expected eventType %q, got %q", EventGetManifests, event.EventType)
	}
	if event.To.ServiceURL != "http://agent.example/" {
		t.Errorf("Unexpected target: %s", event.To.ServiceURL)
	}
	if event.Parameters.DialogEvent != nil {
		t.Error("Discovery event should carry no dialog parameters")
	}
}

func TestNewUtteranceEvent(t *testing.T) {
	event, err := NewUtteranceEvent("client:abc", "http://agent.example/", "hello there")
	if err != nil {
		t.Fatalf("NewUtteranceEvent failed: %v", err)
	}

	if event.EventType != EventUtterance {
		t.Errorf("Expected eventType %q, got %q", EventUtterance, event.EventType)
	}

	dialog := event.Parameters.DialogEvent
	if dialog == nil {
		t.Fatal("dialogEvent is nil")
	}
	if dialog.SpeakerURI != "client:abc" {
		t.Errorf("Expected speakerUri 'client:abc', got %q", dialog.SpeakerURI)
	}

	feature, found := dialog.Features["text"]
	if !found {
		t.Fatal("text feature missing")
	}
	if len(feature.Values) != 1 || feature.Values[0] != "hello there" {
		t.Errorf("Expected single value 'hello there', got %v", feature.Values)
	}
}

func TestNewUtteranceEvent_EmptyText(t *testing.T) {
	_, err := NewUtteranceEvent("client:abc", "http://agent.example/", "")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestEnvelope_WireShape(t *testing.T) {
	event, err := NewUtteranceEvent("client:abc", "http://agent.example/", "hi")
	if err != nil {
		t.Fatalf("NewUtteranceEvent failed: %v", err)
	}
	envelope, err := NewEnvelope("client:abc", "conv_1", []Event{event})
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}

	body, err := json.Marshal(payload{OpenFloor: *envelope})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	floor, found := decoded["openFloor"].(map[string]any)
	if !found {
		t.Fatal("payload missing openFloor key")
	}

	conversation, _ := floor["conversation"].(map[string]any)
	if conversation["id"] != "conv_1" {
		t.Errorf("Expected conversation id 'conv_1', got %v", conversation["id"])
	}

	sender, _ := floor["sender"].(map[string]any)
	if sender["speakerUri"] != "client:abc" {
		t.Errorf("Expected sender speakerUri 'client:abc', got %v", sender["speakerUri"])
	}

	events, _ := floor["events"].([]any)
	if len(events) != 1 {
		t.Fatalf("Expected 1 event on the wire, got %d", len(events))
	}
	wireEvent, _ := events[0].(map[string]any)
	if wireEvent["eventType"] != "utterance" {
		t.Errorf("Expected eventType 'utterance', got %v", wireEvent["eventType"])
	}
	to, _ := wireEvent["to"].(map[string]any)
	if to["serviceUrl"] != "http://agent.example/" {
		t.Errorf("Expected serviceUrl target, got %v", to["serviceUrl"])
	}
}

func TestDiscoveryEvent_WireShape_EmptyParameters(t *testing.T) {
	body, err := json.Marshal(NewGetManifestsEvent("http://agent.example/"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	// Parameters must be present but empty for discovery requests.
	params, found := decoded["parameters"].(map[string]any)
	if !found {
		t.Fatal("parameters key missing from wire event")
	}
	if len(params) != 0 {
		t.Errorf("Expected empty parameters, got %v", params)
	}
}
