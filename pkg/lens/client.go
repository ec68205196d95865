// Package lens contains the client for the Lens GraphQL API
package lens // import "github.com/tapexyz/tape-publisher/pkg/lens"

import (
	"context"
	"net/http"

	"github.com/shurcooL/graphql"
	"golang.org/x/oauth2"
)

// NewClient returns a Lens client for apiURL. If accessToken is not empty it
// is sent as a bearer token on every request.
func NewClient(apiURL string, accessToken string) *Client {
	httpClient := http.DefaultClient
	if accessToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		httpClient = oauth2.NewClient(context.Background(), src)
	}
	return NewClientWithHTTP(apiURL, httpClient)
}

// NewClientWithHTTP returns a Lens client using the given http client
func NewClientWithHTTP(apiURL string, httpClient *http.Client) *Client {
	return &Client{gql: graphql.NewClient(apiURL, httpClient)}
}

// Client calls the Lens API relay mutations and queries
type Client struct {
	gql *graphql.Client
}
