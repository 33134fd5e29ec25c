package pressapi

import (
	"context"
	"fmt"

	"github.com/imroc/req/v3"
)

const (
	v1Posts = "/api/v1/posts"
	v1Post  = "/api/v1/posts/{id}"
)

// PostsAPI is the Publisher Client: create/update of remote posts.
// It carries no retry policy; that belongs to the engine's executor.
type PostsAPI struct {
	client *req.Client
}

func newPostsAPI(client *req.Client) *PostsAPI {
	return &PostsAPI{
		client: client,
	}
}

// Create publishes a new post and returns its remote identity.
func (p *PostsAPI) Create(ctx context.Context, params *PostParams) (apiResp *PostResponse, err error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(params).
		SetSuccessResult(&apiResp).
		Post(v1Posts)

	if err := publishError(resp, err, "post create"); err != nil {
		return nil, err
	}

	return apiResp, nil
}

// Update replaces the content of an existing remote post. A remoteID that no
// longer exists surfaces as a not-found PublishError.
func (p *PostsAPI) Update(ctx context.Context, remoteID string, params *PostParams) (apiResp *PostResponse, err error) {
	if remoteID == "" {
		return nil, fmt.Errorf("remote id required for update")
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("id", remoteID).
		SetBody(params).
		SetSuccessResult(&apiResp).
		Put(v1Post)

	if err := publishError(resp, err, "post update"); err != nil {
		return nil, err
	}

	return apiResp, nil
}
