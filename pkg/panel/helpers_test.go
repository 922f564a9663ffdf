package panel

import (
	"context"

	"github.com/matzehuels/prospect/pkg/source"
)

func sourceFunc(next func() string) source.Source {
	return source.Func(func(ctx context.Context, id string) (string, error) {
		return next(), nil
	})
}
