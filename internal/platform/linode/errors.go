package linode

import (
	"errors"
	"net/http"

	"github.com/linode/linodego"
)

// IsNotFound reports whether the error is a Linode API 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// hasStatus reports whether the error carries the given Linode API status
// code, unwrapping retry and fmt wrappers along the way.
func hasStatus(err error, code int) bool {
	var apiErr *linodego.Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}
