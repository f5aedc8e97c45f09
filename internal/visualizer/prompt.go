package visualizer

import (
	"fmt"
	"strings"
)

const systemIntent = "You are a professional architectural renovation AI specializing in house and garage exterior visualization. " +
	"You create realistic renovation previews by applying construction products to specific architectural regions."

const editRules = "Apply edits strictly only to the provided mask regions. " +
	"Preserve original house geometry, perspective, camera angle, natural lighting, shadows. " +
	"Do not modify sky, ground, driveway, plants, trees, or background elements. " +
	"Match product attributes exactly. Clean edges, realistic blending, professional contractor-level output. " +
	"Real exterior renovation preview, no artistic or illustrated styles. " +
	"If any region is unclear or not visible, do not modify it."

// BuildMaskPrompt produces the provider instruction for a flat binary
// segmentation mask. Hardware never contributes a clause; visual clauses
// always appear in roof, siding, trim order.
func BuildMaskPrompt(payload EditPayload) string {
	var parts []string
	if payload.Roof != nil {
		parts = append(parts, "Highlight roof areas in solid white.")
	}
	if payload.Siding != nil {
		parts = append(parts, "Highlight wall and siding areas in solid white.")
	}
	if payload.Trim != nil {
		parts = append(parts, "Highlight trim, fascia, rake, ridge edges in solid white.")
	}

	var b strings.Builder
	b.WriteString("Generate a black and white segmentation mask image. ")
	b.WriteString("White = editable architectural regions. ")
	b.WriteString("Black = everything else (sky, ground, background). ")
	b.WriteString(strings.Join(parts, " "))
	b.WriteString(" No textures, no colors, no shading. Flat binary mask.")
	return b.String()
}

// BuildEditPrompt produces the provider instruction for the edit pass:
// a fixed persona, one task clause per selected visual category in roof,
// siding, trim order, and a fixed rules block.
func BuildEditPrompt(payload EditPayload) string {
	var parts []string
	if payload.Roof != nil {
		a := payload.Roof.Attributes
		parts = append(parts, fmt.Sprintf(
			"Change the roof to %s %s %s %s. Apply only to roof surfaces.",
			a.Color, a.Texture, a.Finish, a.PatternOrLook))
	}
	if payload.Siding != nil {
		a := payload.Siding.Attributes
		parts = append(parts, fmt.Sprintf(
			"Change the siding/walls to %s %s %s %s. Apply only to wall/siding areas.",
			a.Color, a.Texture, a.Finish, a.PatternOrLook))
	}
	if payload.Trim != nil {
		a := payload.Trim.Attributes
		parts = append(parts, fmt.Sprintf(
			"Change the trim (fascia, edges, corners, rake, ridge) to %s %s %s %s. Apply only to trim regions.",
			a.Color, a.Texture, a.Finish, a.PatternOrLook))
	}

	// Unreachable behind selection validation, but the builder must not
	// produce a broken prompt when called with an empty payload.
	task := "No changes requested."
	if len(parts) > 0 {
		task = strings.Join(parts, " ")
	}

	var b strings.Builder
	b.Grow(1024)
	b.WriteString(systemIntent)
	b.WriteString("\n\nTASK: ")
	b.WriteString(task)
	b.WriteString("\n\nRULES: ")
	b.WriteString(editRules)
	return b.String()
}
