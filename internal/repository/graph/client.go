package graph

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/batchcost/internal/config"
	"github.com/mamadbah2/batchcost/internal/costing"
)

// pageSize is the $top value used when listing items; Graph pages beyond it
// via @odata.nextLink.
const pageSize = 2000

// Item is one raw SharePoint list item: its id plus the loosely typed field
// mapping the costing core consumes.
type Item struct {
	ID     string         `json:"id"`
	Fields costing.Fields `json:"fields"`
}

// Client talks to the Microsoft Graph API for one SharePoint site. Site and
// list identifiers are resolved lazily and cached for the process lifetime;
// tokens live in the injected TokenCache.
type Client struct {
	http   *resty.Client
	login  *resty.Client
	cfg    config.GraphConfig
	tokens *TokenCache
	logger *zap.Logger

	mu      sync.Mutex
	siteID  string
	listIDs map[string]string
}

// NewClient builds a Graph client using the provided configuration values.
func NewClient(cfg config.GraphConfig, tokens *TokenCache, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokens == nil {
		tokens = NewTokenCache()
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	loginClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.LoginURL, "/")).
		SetTimeout(30 * time.Second)

	return &Client{
		http:    httpClient,
		login:   loginClient,
		cfg:     cfg,
		tokens:  tokens,
		logger:  logger,
		listIDs: make(map[string]string),
	}
}

// apiError mirrors Graph's error payload shape.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) token(ctx context.Context) (string, error) {
	return c.tokens.Get(ctx, c.fetchToken)
}

func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	return c.http.R().SetContext(ctx).SetAuthToken(token), nil
}

func checkStatus(resp *resty.Response, apiErr *apiError, operation string) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}
	return fmt.Errorf("%s failed: status=%d code=%s message=%s", operation, resp.StatusCode(), apiErr.Error.Code, apiErr.Error.Message)
}

// SiteID resolves (and caches) the Graph identifier of the configured site.
func (c *Client) SiteID(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.siteID
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	req, err := c.request(ctx)
	if err != nil {
		return "", err
	}

	result := new(struct {
		ID string `json:"id"`
	})
	apiErr := new(apiError)

	resp, err := req.SetResult(result).SetError(apiErr).
		Get(fmt.Sprintf("/sites/%s:%s", c.cfg.SiteHost, c.cfg.SitePath))
	if err != nil {
		return "", fmt.Errorf("get site: %w", err)
	}
	if err := checkStatus(resp, apiErr, "get site"); err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", fmt.Errorf("site id empty for %s:%s", c.cfg.SiteHost, c.cfg.SitePath)
	}

	c.mu.Lock()
	c.siteID = result.ID
	c.mu.Unlock()

	c.logger.Debug("site id resolved", zap.String("site_id", result.ID))
	return result.ID, nil
}

// ListID resolves (and caches) a list's identifier by its display name.
func (c *Client) ListID(ctx context.Context, displayName string) (string, error) {
	c.mu.Lock()
	cached, ok := c.listIDs[displayName]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	siteID, err := c.SiteID(ctx)
	if err != nil {
		return "", err
	}

	req, err := c.request(ctx)
	if err != nil {
		return "", err
	}

	result := new(struct {
		Value []struct {
			ID          string `json:"id"`
			DisplayName string `json:"displayName"`
		} `json:"value"`
	})
	apiErr := new(apiError)

	resp, err := req.SetResult(result).SetError(apiErr).
		SetQueryParam("$top", "200").
		Get(fmt.Sprintf("/sites/%s/lists", siteID))
	if err != nil {
		return "", fmt.Errorf("get lists: %w", err)
	}
	if err := checkStatus(resp, apiErr, "get lists"); err != nil {
		return "", err
	}

	for _, entry := range result.Value {
		if entry.DisplayName == displayName && entry.ID != "" {
			c.mu.Lock()
			c.listIDs[displayName] = entry.ID
			c.mu.Unlock()
			return entry.ID, nil
		}
	}

	return "", fmt.Errorf("list not found: %s", displayName)
}

// ListItems fetches every item of a list, following @odata.nextLink until the
// store reports no further pages.
func (c *Client) ListItems(ctx context.Context, listID string) ([]Item, error) {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("/sites/%s/lists/%s/items?$expand=fields&$top=%d", siteID, listID, pageSize)

	var items []Item
	for url != "" {
		req, err := c.request(ctx)
		if err != nil {
			return nil, err
		}

		result := new(struct {
			Value    []Item `json:"value"`
			NextLink string `json:"@odata.nextLink"`
		})
		apiErr := new(apiError)

		resp, err := req.SetResult(result).SetError(apiErr).Get(url)
		if err != nil {
			return nil, fmt.Errorf("get items: %w", err)
		}
		if err := checkStatus(resp, apiErr, "get items"); err != nil {
			return nil, err
		}

		items = append(items, result.Value...)
		url = result.NextLink
	}

	return items, nil
}

// ListColumns fetches a list's column definitions as the field catalog used
// by write-back resolution.
func (c *Client) ListColumns(ctx context.Context, listID string) ([]costing.FieldDescriptor, error) {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return nil, err
	}

	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	result := new(struct {
		Value []struct {
			Name        string `json:"name"`
			DisplayName string `json:"displayName"`
		} `json:"value"`
	})
	apiErr := new(apiError)

	resp, err := req.SetResult(result).SetError(apiErr).
		Get(fmt.Sprintf("/sites/%s/lists/%s/columns", siteID, listID))
	if err != nil {
		return nil, fmt.Errorf("get columns: %w", err)
	}
	if err := checkStatus(resp, apiErr, "get columns"); err != nil {
		return nil, err
	}

	catalog := make([]costing.FieldDescriptor, 0, len(result.Value))
	for _, column := range result.Value {
		catalog = append(catalog, costing.FieldDescriptor{
			InternalID:   column.Name,
			DisplayLabel: column.DisplayName,
		})
	}
	return catalog, nil
}

// UpdateItemFields issues a partial update of one item's fields.
func (c *Client) UpdateItemFields(ctx context.Context, listID, itemID string, fields map[string]any) error {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return err
	}

	req, err := c.request(ctx)
	if err != nil {
		return err
	}

	apiErr := new(apiError)

	resp, err := req.SetBody(fields).SetError(apiErr).
		Patch(fmt.Sprintf("/sites/%s/lists/%s/items/%s/fields", siteID, listID, itemID))
	if err != nil {
		return fmt.Errorf("patch item fields: %w", err)
	}
	if err := checkStatus(resp, apiErr, "patch item fields"); err != nil {
		return err
	}

	c.logger.Debug("item fields patched",
		zap.String("list_id", listID),
		zap.String("item_id", itemID),
		zap.Int("fields", len(fields)))
	return nil
}
