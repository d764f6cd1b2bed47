package merge

import (
	errs "github.com/matzehuels/elementmerge/pkg/errors"
	"github.com/matzehuels/elementmerge/pkg/model"
)

// User-facing rejection messages.
const (
	MsgNotElements   = "All selected items must be elements."
	MsgMixedTypes    = "All selected elements must be of the same type."
	MsgMixedNames    = "All selected elements must have the same name."
	MsgTooFew        = "Select at least two elements to merge."
	MsgDuplicateItem = "Each element may be selected only once."
)

// ValidateSelection resolves ids to elements and checks that they can be
// merged: at least two distinct elements sharing a type and a name. Names are
// compared exactly, so unnamed elements such as junctions merge with each
// other but not with named ones.
//
// IDs unknown to the model yield an [errs.ErrCodeElementNotFound] error;
// every other rejection is an [errs.ErrCodeInvalidSelection] error whose
// message is meant for the user.
func ValidateSelection(m *model.Model, ids []model.ID) ([]*model.Element, error) {
	if len(ids) < 2 {
		return nil, errs.New(errs.ErrCodeInvalidSelection, MsgTooFew)
	}

	seen := make(map[model.ID]bool, len(ids))
	elements := make([]*model.Element, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, errs.New(errs.ErrCodeInvalidSelection, MsgDuplicateItem)
		}
		seen[id] = true

		e, ok := m.Element(id)
		if !ok {
			if m.Contains(id) {
				return nil, errs.New(errs.ErrCodeInvalidSelection, MsgNotElements)
			}
			return nil, errs.New(errs.ErrCodeElementNotFound, "element %s not found", id)
		}
		elements = append(elements, e)
	}

	first := elements[0]
	for _, e := range elements[1:] {
		if e.Type != first.Type {
			return nil, errs.New(errs.ErrCodeInvalidSelection, MsgMixedTypes)
		}
	}
	for _, e := range elements[1:] {
		if e.Name != first.Name {
			return nil, errs.New(errs.ErrCodeInvalidSelection, MsgMixedNames)
		}
	}
	return elements, nil
}
