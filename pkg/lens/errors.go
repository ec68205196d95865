package lens

import (
	"context"
	"reflect"

	"github.com/shurcooL/graphql"
)

var graphqlPkgPath = reflect.TypeOf(graphql.Client{}).PkgPath()

// APIError is an error message returned by the Lens API in the graphql
// errors array
type APIError struct {
	Message string
}

// Error implements error
func (e *APIError) Error() string {
	return e.Message
}

// asAPIError converts the graphql client response errors into an APIError.
// Transport and decoding errors are returned as is.
func asAPIError(err error) error {
	if err == nil {
		return nil
	}
	t := reflect.TypeOf(err)
	if t.Kind() == reflect.Slice && t.PkgPath() == graphqlPkgPath {
		return &APIError{Message: err.Error()}
	}
	return err
}

func (c *Client) query(ctx context.Context, q interface{}, variables map[string]interface{}) error {
	return asAPIError(c.gql.Query(ctx, q, variables))
}

func (c *Client) mutate(ctx context.Context, m interface{}, variables map[string]interface{}) error {
	return asAPIError(c.gql.Mutate(ctx, m, variables))
}
