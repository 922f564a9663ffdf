package source

import (
	stderrors "errors"

	"github.com/matzehuels/prospect/pkg/errors"
)

func asFetchError(err error, target **errors.FetchError) bool {
	return stderrors.As(err, target)
}
