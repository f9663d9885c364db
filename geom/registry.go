package geom

import "github.com/luisarose/openmoc2d/internal/idalloc"

// Registry owns the id counters for one family of surfaces. A geometry
// build constructs exactly one Registry and threads it through every
// NewPlane/NewCircle/... call, replacing the process-wide static counters
// the original carried (see DESIGN.md).
type Registry struct {
	uids    idalloc.Dense
	userIDs idalloc.UserIDs
}

// NewRegistry returns an empty surface-id registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) assign(requestedUserID int) (uid, userID int, err error) {
	userID, err = r.userIDs.Assign(requestedUserID)
	if err != nil {
		return 0, 0, err
	}
	return r.uids.Next(), userID, nil
}
