package detection

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ============================================================
// Loose payload types
// ============================================================

// The analyzer is an LLM behind an HTTP stream; field types drift between
// responses. These types accept numbers or numeric strings and never fail on
// a single malformed value.

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	*f = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = flexFloat(v)
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		*f = flexFloat(v)
	}
	return nil
}

type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	*s = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err == nil {
			*s = flexString(v)
		}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = flexString(n.String())
	}
	return nil
}

// textList accepts a list of strings or of objects carrying a descriptive
// field (type, name, description).
type textList []string

func (l *textList) UnmarshalJSON(b []byte) error {
	*l = nil
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil
	}

	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s != "" {
				*l = append(*l, s)
			}
			continue
		}

		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		for _, key := range []string{"type", "name", "description", "message"} {
			if v, ok := obj[key].(string); ok && v != "" {
				*l = append(*l, v)
				break
			}
		}
	}
	return nil
}

type rawPoint struct {
	X flexFloat `json:"x"`
	Y flexFloat `json:"y"`
}

type rawDimensions struct {
	Length flexFloat `json:"length"`
	Width  flexFloat `json:"width"`
}

type rawRoom struct {
	ID                   flexString    `json:"id"`
	Name                 string        `json:"name"`
	Category             string        `json:"category"`
	Carpetable           *bool         `json:"carpetable"`
	Dimensions           rawDimensions `json:"dimensions"`
	Area                 flexFloat     `json:"area"`
	OriginalArea         flexFloat     `json:"originalArea"`
	ObstacleReduction    flexFloat     `json:"obstacleReduction"`
	Confidence           flexFloat     `json:"confidence"`
	IdentificationMethod string        `json:"identificationMethod"`
	Boundary             []rawPoint    `json:"boundary"`
	RoomBoundary         *struct {
		Coordinates []rawPoint `json:"coordinates"`
	} `json:"roomBoundary"`
	Obstacles        textList `json:"obstacles"`
	Notes            string   `json:"notes"`
	AIReasoning      string   `json:"aiReasoning"`
	ManuallyAdjusted bool     `json:"manuallyAdjusted"`
}

type rawStats struct {
	QualityScore     flexFloat `json:"qualityScore"`
	ProcessingMethod string    `json:"processingMethod"`
}

type rawAnalysis struct {
	Success         *bool           `json:"success"`
	Error           string          `json:"error"`
	Rooms           json.RawMessage `json:"rooms"`
	AnalysisMethod  string          `json:"analysisMethod"`
	ExtractionStats rawStats        `json:"extractionStats"`
	Warnings        textList        `json:"warnings"`
	Canvas          struct {
		Width  flexFloat `json:"width"`
		Height flexFloat `json:"height"`
	} `json:"canvas"`
}
