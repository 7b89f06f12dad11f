package models

// Capability is a named admin permission. Admin tokens carry a list of these
// in the "permissions" claim; handlers check the one they need before touching
// the store.
type Capability string

const (
	CapabilityReviewView   Capability = "review_view"
	CapabilityReviewDelete Capability = "review_delete"
)

type PermissionSet map[Capability]struct{}

func NewPermissionSet(names []string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, name := range names {
		set[Capability(name)] = struct{}{}
	}
	return set
}

func (s PermissionSet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}
