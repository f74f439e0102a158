package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpub/pkg/domain/interfaces"
	"github.com/m-mizutani/relpub/pkg/domain/model"
	"github.com/m-mizutani/relpub/pkg/domain/types"
	"github.com/m-mizutani/relpub/pkg/utils/logging"
)

const (
	// DefaultAPIURL is the GitHub REST API endpoint
	DefaultAPIURL = "https://api.github.com"

	acceptHeader = "application/vnd.github+json"
)

type client struct {
	httpClient *http.Client
	apiURL     string
	uploadURL  string
	owner      string
	repo       string
	token      types.Token
}

// Option is a functional option for the release client
type Option func(*client)

// WithAPIURL sets the REST API base URL
func WithAPIURL(apiURL string) Option {
	return func(c *client) {
		c.apiURL = strings.TrimRight(apiURL, "/")
	}
}

// WithUploadURL sets the base URL used for asset uploads
func WithUploadURL(uploadURL string) Option {
	return func(c *client) {
		c.uploadURL = strings.TrimRight(uploadURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a release client for owner/repo authenticated by token
func NewClient(owner, repo string, token types.Token, opts ...Option) interfaces.ReleaseClient {
	c := &client{
		httpClient: http.DefaultClient,
		apiURL:     DefaultAPIURL,
		owner:      owner,
		repo:       repo,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.uploadURL == "" {
		c.uploadURL = c.apiURL
	}
	return c
}

type releaseResponse struct {
	URL     string `json:"url"`
	HTMLURL string `json:"html_url"`
	TagName string `json:"tag_name"`
}

// CreateRelease posts a new release
func (c *client) CreateRelease(ctx context.Context, req *model.ReleaseRequest) (*model.ReleaseHandle, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal release request", goerr.T(types.ErrTagReleaseCreate))
	}

	logging.From(ctx).Debug("Sending release payload",
		"owner", c.owner,
		"repo", c.repo,
		"payload", req,
	)

	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases", c.apiURL, url.PathEscape(c.owner), url.PathEscape(c.repo))
	outcome, err := c.do(ctx, http.MethodPost, endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send create release request",
			goerr.T(types.ErrTagReleaseCreate),
			goerr.V("tag", req.TagName))
	}
	if !outcome.OK {
		return nil, outcome.toError("create release", goerr.T(types.ErrTagReleaseCreate), req.TagName)
	}

	handle := &model.ReleaseHandle{Tag: req.TagName}
	var resp releaseResponse
	if err := json.Unmarshal(outcome.Body, &resp); err == nil {
		handle.URL = resp.URL
		handle.HTMLURL = resp.HTMLURL
	}

	return handle, nil
}

// FetchReleaseHandle gets release metadata by tag
func (c *client) FetchReleaseHandle(ctx context.Context, tag string) (*model.ReleaseHandle, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s",
		c.apiURL, url.PathEscape(c.owner), url.PathEscape(c.repo), url.PathEscape(tag))

	outcome, err := c.do(ctx, http.MethodGet, endpoint, "", nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send get release request",
			goerr.T(types.ErrTagReleaseFetch),
			goerr.V("tag", tag))
	}
	if !outcome.OK {
		return nil, outcome.toError("get release", goerr.T(types.ErrTagReleaseFetch), tag)
	}

	var resp releaseResponse
	if err := json.Unmarshal(outcome.Body, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to decode release",
			goerr.T(types.ErrTagReleaseFetch),
			goerr.V("tag", tag))
	}
	if resp.URL == "" {
		return nil, goerr.New("release has no url",
			goerr.T(types.ErrTagReleaseFetch),
			goerr.V("tag", tag))
	}

	return &model.ReleaseHandle{
		Tag:     tag,
		URL:     resp.URL,
		HTMLURL: resp.HTMLURL,
	}, nil
}

// DeleteRelease deletes the release at handle.URL
func (c *client) DeleteRelease(ctx context.Context, handle *model.ReleaseHandle) error {
	if handle == nil || handle.URL == "" {
		return goerr.New("release url is unknown", goerr.T(types.ErrTagReleaseDelete))
	}

	outcome, err := c.do(ctx, http.MethodDelete, handle.URL, "", nil)
	if err != nil {
		return goerr.Wrap(err, "failed to send delete release request",
			goerr.T(types.ErrTagReleaseDelete),
			goerr.V("tag", handle.Tag))
	}
	if !outcome.OK {
		return outcome.toError("delete release", goerr.T(types.ErrTagReleaseDelete), handle.Tag)
	}

	return nil
}

// UploadAsset posts the base64 encoded artifact to the release asset endpoint
func (c *client) UploadAsset(ctx context.Context, handle *model.ReleaseHandle, artifact *model.Artifact) error {
	encoded := base64.StdEncoding.EncodeToString(artifact.Data)

	query := url.Values{}
	query.Set("name", artifact.Name)
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/%s/assets?%s",
		c.uploadURL, url.PathEscape(c.owner), url.PathEscape(c.repo), url.PathEscape(handle.Tag), query.Encode())

	logging.From(ctx).Debug("Uploading release asset",
		"tag", handle.Tag,
		"name", artifact.Name,
		"size_bytes", len(artifact.Data),
		"encoded_bytes", len(encoded),
	)

	outcome, err := c.do(ctx, http.MethodPost, endpoint, "application/octet-stream", strings.NewReader(encoded))
	if err != nil {
		return goerr.Wrap(err, "failed to send upload asset request",
			goerr.T(types.ErrTagAssetUpload),
			goerr.V("tag", handle.Tag),
			goerr.V("name", artifact.Name))
	}
	if !outcome.OK {
		return outcome.toError("upload asset", goerr.T(types.ErrTagAssetUpload), handle.Tag)
	}

	return nil
}

func (c *client) do(ctx context.Context, method, endpoint, contentType string, body io.Reader) (*Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", endpoint))
	}

	req.Header.Set("Authorization", "Token "+c.token.String())
	req.Header.Set("Accept", acceptHeader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "request failed", goerr.V("method", method), goerr.V("url", endpoint))
	}
	defer resp.Body.Close()

	outcome, err := classify(resp)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("GitHub API response",
		"method", method,
		"url", endpoint,
		"status", outcome.Status,
	)
	return outcome, nil
}
