package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikbrunner/bm-popup/internal/api"
	"github.com/nikbrunner/bm-popup/internal/model"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrMissingPayload = errors.New("message payload missing")
)

// Sender delivers a request and waits for its response.
type Sender interface {
	Send(ctx context.Context, req Request) (Response, error)
}

// Backend is the remote service the router forwards to.
type Backend interface {
	Tags(ctx context.Context) ([]model.Tag, error)
	CreateBookmark(ctx context.Context, draft model.BookmarkDraft) error
	Search(ctx context.Context, query string, offset, limit int) (*api.SearchPage, error)
}

// Router maps message envelopes onto backend calls. It holds no state and is
// safe for concurrent use.
type Router struct {
	backend Backend
}

// NewRouter creates a Router in front of backend.
func NewRouter(backend Backend) *Router {
	return &Router{backend: backend}
}

// Send handles one request. Structured service errors become Success=false
// responses; anything else (network, decode, unknown type) is returned as error.
func (r *Router) Send(ctx context.Context, req Request) (Response, error) {
	switch req.Type {
	case GetTags:
		tags, err := r.backend.Tags(ctx)
		if err != nil {
			return failure(err)
		}
		return Response{Success: true, Data: Data{Tags: tags}}, nil

	case CreateBookmark:
		if req.Bookmark == nil {
			return Response{}, fmt.Errorf("%s: %w", req.Type, ErrMissingPayload)
		}
		if err := r.backend.CreateBookmark(ctx, *req.Bookmark); err != nil {
			return failure(err)
		}
		return Response{Success: true}, nil

	case SearchBookmarks:
		page, err := r.backend.Search(ctx, req.Query, req.Offset, req.Limit)
		if err != nil {
			return failure(err)
		}
		return Response{Success: true, Data: Data{Items: page.Items, HasMore: page.HasMore}}, nil

	default:
		return Response{}, fmt.Errorf("%w: %q", ErrUnknownMessage, req.Type)
	}
}

func failure(err error) (Response, error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		body := apiErr.Body
		return Response{
			Success:    false,
			Status:     apiErr.Status,
			Body:       &body,
			RetryAfter: apiErr.RetryAfter,
		}, nil
	}
	return Response{}, err
}

// Func adapts a function to the Sender interface.
type Func func(ctx context.Context, req Request) (Response, error)

func (f Func) Send(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
