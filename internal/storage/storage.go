package storage

import (
	"context"

	"github.com/Azim18821/track3-sub004/internal/domain"
)

// PlanArchive stores JSON snapshots of completed fitness plans in object
// storage. Archiving is best effort; a failed archive never fails a
// generation run.
type PlanArchive interface {
	// ArchivePlan writes the plan document and returns the object key.
	ArchivePlan(ctx context.Context, plan *domain.FitnessPlan) (string, error)

	// DeleteArchive removes a previously written snapshot.
	DeleteArchive(ctx context.Context, objectKey string) error
}
