package secop

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL = "https://www.datos.gov.co"
	// SECOP II - Procesos de Contratación dataset.
	processesPath = "/resource/p6dx-8zbt.json"
	userAgent     = "licitops/secop-scout (soporte@licitops.dev)"
	// Max rows requested per page. Socrata caps unauthenticated requests lower,
	// an app token lifts the throttling.
	pageSize = 1000
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	appToken   string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a feed client. The app token is optional: without it the open
// data API still answers, just with aggressive throttling.
func New(ctx context.Context, logger *zap.Logger, appToken string) *Client {
	return &Client{
		ctx:      ctx,
		appToken: appToken,
		APIURL:   apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

func (c *Client) Search(params *SearchParams) (*Tenders, error) {
	return c.search(params)
}

// GetTender fetches a single process by its id.
func (c *Client) GetTender(id string) (*Tender, error) {
	return c.getTender(id)
}
