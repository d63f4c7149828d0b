// Package adapters bridges the user directory to the narrower ports the
// geofence service consumes.
package adapters

import (
	"context"

	"safecircle/internal/directory"
)

// DirectoryFamilyLister adapts a directory.Directory to geofence.FamilyLister.
type DirectoryFamilyLister struct {
	Directory directory.Directory
}

func (a DirectoryFamilyLister) FamilyIDsOf(ctx context.Context, userID string) ([]string, error) {
	families, err := a.Directory.FamiliesOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(families))
	for _, f := range families {
		ids = append(ids, f.ID)
	}
	return ids, nil
}
