package clinical

import "errors"

var ErrRecordNotFound = errors.New("clinical record not found")
