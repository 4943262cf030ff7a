package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

// RequestData is the per-request identity carrier. UserID is uuid.Nil for
// anonymous callers; ClientKey identifies the quiz client regardless of
// authentication state.
type RequestData struct {
	TokenString  string
	RefreshToken string
	UserID       uuid.UUID
	ClientKey    string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
