package catalog

import "errors"

var (
	ErrEntryNotFound = errors.New("catalog entry not found")
	ErrEntryExists   = errors.New("catalog entry with that name already exists")
	ErrNameRequired  = errors.New("name is required")
)
