package models

import "fmt"

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimensions are metric, length along Y and width along X of the drawing.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// Canvas is the extent of the drawing surface boundary points live on.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (c Canvas) IsZero() bool {
	return c.Width <= 0 || c.Height <= 0
}

// ============================================================
// Rooms
// ============================================================

type Method string

const (
	MethodManual   Method = "manual"
	MethodDetected Method = "ai"
)

type Room struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Category             Category   `json:"category"`
	Carpetable           bool       `json:"carpetable"`
	Dimensions           Dimensions `json:"dimensions"`
	Area                 float64    `json:"area"`
	OriginalArea         float64    `json:"originalArea"`
	ObstacleReduction    float64    `json:"obstacleReduction"`
	CarpetableArea       float64    `json:"carpetableArea"`
	LinearMetres         float64    `json:"linearMetres"`
	Confidence           float64    `json:"confidence"`
	IdentificationMethod Method     `json:"identificationMethod"`
	Boundary             []Point    `json:"boundary,omitempty"`
	Obstacles            []string   `json:"obstacles,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	AIReasoning          string     `json:"aiReasoning,omitempty"`
	ManuallyAdjusted     bool       `json:"manuallyAdjusted"`
}

// DisplayName falls back to "Room N" (1-based) for unnamed rooms.
func (r Room) DisplayName(index int) string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("Room %d", index+1)
}

func (r Room) HasBoundary() bool {
	return len(r.Boundary) >= 3
}

// ============================================================
// Room set (analysis result)
// ============================================================

type ExtractionStats struct {
	RoomsFound       int     `json:"roomsFound"`
	CarpetableRooms  int     `json:"carpetableRooms"`
	QualityScore     float64 `json:"qualityScore"`
	ProcessingMethod string  `json:"processingMethod"`
}

type RoomSet struct {
	Rooms               []Room          `json:"rooms"`
	TotalCarpetableArea float64         `json:"totalCarpetableArea"`
	TotalLinearMetres   float64         `json:"totalLinearMetres"`
	AnalysisMethod      string          `json:"analysisMethod"`
	ExtractionStats     ExtractionStats `json:"extractionStats"`
	Warnings            []string        `json:"warnings,omitempty"`
	Canvas              Canvas          `json:"canvas"`
}

// IndexOf returns the position of the room with the given id, or -1.
func (s *RoomSet) IndexOf(id string) int {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			return i
		}
	}
	return -1
}

// ============================================================
// Customer
// ============================================================

type Customer struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	InstallDate string `json:"installDate"`
	Notes       string `json:"notes"`
}
