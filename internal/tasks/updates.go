package tasks

import (
	"fmt"

	"github.com/desertthunder/coverwall/internal/models"
)

// ProgressUpdate represents a progress event during a batch.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	Retrieve Phase = iota
	Persist
)

func (p Phase) String() string {
	switch p {
	case Retrieve:
		return "retrieve"
	case Persist:
		return "persist"
	default:
		return ""
	}
}

func retrievingUpdate(step, total int, d models.InputDescriptor) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Retrieve,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Retrieving %s %s...", step, total, d.Type, d.HTTPFriendlyShortName),
	}
}

func retrievedUpdate(step, total int, result *models.RetrievalResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Retrieve,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d items)", step, total, result.ArtistLike.Name, len(result.Items)),
		Data:    result,
	}
}

func retrieveFailedUpdate(step, total int, d models.InputDescriptor, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Retrieve,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, d.HTTPFriendlyShortName, err),
	}
}

// PersistUpdate reports that results are being written to dir.
func PersistUpdate(total int, dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Persist,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Writing %d results to %s...", total, dir),
	}
}
