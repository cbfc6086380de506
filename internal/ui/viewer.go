package ui

import "insecticide/internal/storage"

// Viewer displays the failures of a stored run
type Viewer interface {
	View(run *storage.Run) error
}
