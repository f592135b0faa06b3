package xcontext

import (
	"context"

	"github.com/google/uuid"
)

type chainIDKey struct{}

func SetChainID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, chainIDKey{}, id)
}

func GetChainID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(chainIDKey{}).(uuid.UUID)
	return id, ok
}
