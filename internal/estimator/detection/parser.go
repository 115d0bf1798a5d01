package detection

import (
	"encoding/json"
	"fmt"
	"strings"

	"carpet-estimator/internal/estimator/models"
)

// ============================================================
// Analysis parser
// ============================================================

const defaultAnalysisMethod = "AI Analysis"

// ParseError reports analyzer output that could not be turned into a room set.
type ParseError struct {
	Reason  string
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse analysis: %s: %.200s", e.Reason, e.Snippet)
}

// ParseAnalysis recovers a room set from analyzer text. The text may be bare
// JSON, JSON wrapped in prose, or a fenced code block. Rooms come back with
// categories resolved and carpetable defaulted from the category policy when
// the analyzer did not state it; numeric derivation is left to the engine.
func ParseAnalysis(text string) (models.RoomSet, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.RoomSet{}, &ParseError{Reason: "empty response"}
	}

	reason := "no JSON object found"
	for _, candidate := range candidates(text) {
		var raw rawAnalysis
		if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
			continue
		}
		if raw.Success != nil && !*raw.Success {
			msg := raw.Error
			if msg == "" {
				msg = "analyzer reported failure"
			}
			return models.RoomSet{}, &ParseError{Reason: msg, Snippet: text}
		}
		if len(raw.Rooms) == 0 || string(raw.Rooms) == "null" {
			reason = "missing rooms"
			continue
		}

		set, err := raw.toRoomSet()
		if err != nil {
			reason = err.Error()
			continue
		}
		return set, nil
	}

	return models.RoomSet{}, &ParseError{Reason: reason, Snippet: text}
}

// candidates lists the substrings worth trying, in order: the whole text,
// first '{' to last '}', a ```json block, any ``` block.
func candidates(text string) []string {
	out := []string{text}

	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			out = append(out, text[start:end+1])
		}
	}

	for _, fence := range []string{"```json", "```"} {
		if idx := strings.Index(text, fence); idx >= 0 {
			after := text[idx+len(fence):]
			if end := strings.Index(after, "```"); end >= 0 {
				out = append(out, strings.TrimSpace(after[:end]))
			}
		}
	}
	return out
}

func (a rawAnalysis) toRoomSet() (models.RoomSet, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(a.Rooms, &items); err != nil {
		return models.RoomSet{}, fmt.Errorf("rooms is not a list")
	}

	set := models.RoomSet{
		Rooms:          make([]models.Room, 0, len(items)),
		AnalysisMethod: a.AnalysisMethod,
		ExtractionStats: models.ExtractionStats{
			QualityScore:     float64(a.ExtractionStats.QualityScore),
			ProcessingMethod: a.ExtractionStats.ProcessingMethod,
		},
		Warnings: []string(a.Warnings),
		Canvas: models.Canvas{
			Width:  float64(a.Canvas.Width),
			Height: float64(a.Canvas.Height),
		},
	}
	if set.AnalysisMethod == "" {
		set.AnalysisMethod = defaultAnalysisMethod
	}

	for i, item := range items {
		var raw rawRoom
		if err := json.Unmarshal(item, &raw); err != nil {
			set.Warnings = append(set.Warnings, fmt.Sprintf("room %d skipped: %v", i+1, err))
			continue
		}

		room, known := raw.toRoom()
		if !known && raw.Category != "" {
			set.Warnings = append(set.Warnings,
				fmt.Sprintf("%s: unknown category %q treated as other", room.DisplayName(i), raw.Category))
		}
		set.Rooms = append(set.Rooms, room)
	}
	return set, nil
}

func (r rawRoom) toRoom() (models.Room, bool) {
	category, known := models.ParseCategory(r.Category)

	carpetable := category.Carpetable()
	if r.Carpetable != nil {
		carpetable = *r.Carpetable
	}

	points := r.Boundary
	if len(points) == 0 && r.RoomBoundary != nil {
		points = r.RoomBoundary.Coordinates
	}
	var boundary []models.Point
	for _, p := range points {
		boundary = append(boundary, models.Point{X: float64(p.X), Y: float64(p.Y)})
	}

	return models.Room{
		ID:         string(r.ID),
		Name:       strings.TrimSpace(r.Name),
		Category:   category,
		Carpetable: carpetable,
		Dimensions: models.Dimensions{
			Length: float64(r.Dimensions.Length),
			Width:  float64(r.Dimensions.Width),
		},
		Area:                 float64(r.Area),
		OriginalArea:         float64(r.OriginalArea),
		ObstacleReduction:    float64(r.ObstacleReduction),
		Confidence:           float64(r.Confidence),
		IdentificationMethod: models.Method(r.IdentificationMethod),
		Boundary:             boundary,
		Obstacles:            []string(r.Obstacles),
		Notes:                r.Notes,
		AIReasoning:          r.AIReasoning,
		ManuallyAdjusted:     r.ManuallyAdjusted,
	}, known
}
