package identify

import "errors"

// ErrAllServicesUnreachable is returned when every configured
// identification service failed; a partially-unresolved identity set is
// not an error, total blindness is.
var ErrAllServicesUnreachable = errors.New("all identification services unreachable")
