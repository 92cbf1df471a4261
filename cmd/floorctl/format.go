package main

import (
	"fmt"
	"strings"

	"github.com/openfloor-dev/floorctl/pkg/openfloor"
)

// formatManifests renders manifests for terminal display. Presentation only;
// missing fields are shown with placeholders, never treated as errors.
func formatManifests(manifests []openfloor.Manifest) string {
	if len(manifests) == 0 {
		return "No manifests available\n"
	}

	var b strings.Builder
	for i, manifest := range manifests {
		fmt.Fprintf(&b, "\n📋 Manifest %d:\n", i+1)

		id := manifest.Identification
		fmt.Fprintf(&b, "  Name:         %s\n", orUnknown(id.ConversationalName))
		fmt.Fprintf(&b, "  Organization: %s\n", orUnknown(id.Organization))
		fmt.Fprintf(&b, "  Description:  %s\n", orElse(id.Synopsis, "No description"))
		fmt.Fprintf(&b, "  Speaker URI:  %s\n", orUnknown(id.SpeakerURI))

		if len(manifest.Capabilities) > 0 {
			fmt.Fprintf(&b, "  Capabilities: %d\n", len(manifest.Capabilities))
			for j, capability := range manifest.Capabilities {
				fmt.Fprintf(&b, "    %d. Keywords: %s\n", j+1, strings.Join(capability.Keyphrases, ", "))
				if len(capability.Descriptions) > 0 {
					fmt.Fprintf(&b, "       Description: %s\n", capability.Descriptions[0])
				}
			}
		}
	}
	return b.String()
}

func orUnknown(s string) string {
	return orElse(s, "Unknown")
}

func orElse(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
