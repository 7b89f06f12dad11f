package models

import "testing"

func TestPermissionSetHas(t *testing.T) {
	set := NewPermissionSet([]string{"review_view"})

	if !set.Has(CapabilityReviewView) {
		t.Error("expected review_view to be present")
	}
	if set.Has(CapabilityReviewDelete) {
		t.Error("expected review_delete to be absent")
	}
}

func TestPermissionSetEmpty(t *testing.T) {
	set := NewPermissionSet(nil)
	if set.Has(CapabilityReviewView) || set.Has(CapabilityReviewDelete) {
		t.Error("empty set must deny every capability")
	}
}
