package engine

import (
	"fmt"

	"carpet-estimator/internal/estimator/models"
)

const (
	ManualAnalysisMethod   = "Manual Input"
	ManualProcessingMethod = "Manual Room Definition"
	manualReasoning        = "Manually defined by user"
)

// ManualResult packages hand-drawn rooms in the same shape an analysis
// returns, naming unnamed rooms and noting their carpet availability.
func ManualResult(rooms []models.Room, canvas models.Canvas) models.RoomSet {
	out := make([]models.Room, len(rooms))
	for i, r := range rooms {
		room := clone(r)
		room.Name = r.DisplayName(i)
		room.Confidence = 1
		room.IdentificationMethod = models.MethodManual
		if room.AIReasoning == "" {
			room.AIReasoning = manualReasoning
		}
		availability := "Not"
		if room.Carpetable {
			availability = "Full"
		}
		room.Notes = fmt.Sprintf("%s - %s area available for carpet installation", room.Name, availability)
		out[i] = room
	}

	return models.RoomSet{
		Rooms:          out,
		AnalysisMethod: ManualAnalysisMethod,
		ExtractionStats: models.ExtractionStats{
			QualityScore:     100,
			ProcessingMethod: ManualProcessingMethod,
		},
		Canvas: canvas,
	}
}
