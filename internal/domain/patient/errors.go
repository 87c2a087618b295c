package patient

import "errors"

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrPatientAlreadyExists = errors.New("patient with this DNI already exists")
	ErrDNIRequired          = errors.New("DNI is required")
)
