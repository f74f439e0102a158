package github

import (
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpub/pkg/domain/types"
)

// Outcome is the classified result of one API call
type Outcome struct {
	OK     bool
	Status int
	Body   []byte
}

// IsSuccess reports whether status is in the 2xx range
func IsSuccess(status int) bool {
	return status >= 200 && status <= 299
}

// classify reads the response body and tags the response as success or failure
func classify(resp *http.Response) (*Outcome, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body", goerr.V("status", resp.StatusCode))
	}

	return &Outcome{
		OK:     IsSuccess(resp.StatusCode),
		Status: resp.StatusCode,
		Body:   body,
	}, nil
}

func (o *Outcome) toError(op string, kind goerr.Option, releaseTag string) error {
	apiErr := &types.APIError{
		Op:     op,
		Status: o.Status,
		Body:   string(o.Body),
	}
	return goerr.Wrap(apiErr, "failed to "+op,
		kind,
		goerr.V("status", o.Status),
		goerr.V("tag", releaseTag))
}
