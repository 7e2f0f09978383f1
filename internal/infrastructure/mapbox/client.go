package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/agency-service/internal/config"
	"github.com/agency-service/internal/domain"
	"github.com/agency-service/internal/domain/repository"
	"github.com/agency-service/internal/pkg/utils"
)

type client struct {
	httpClient    *http.Client
	baseURL       string
	accessToken   string
	maxCandidates int
	logger        *zap.Logger
}

// NewGeocodingClient creates a forward-geocoding client for the Mapbox
// Places API. Token, base URL and timeout are injected from config.
func NewGeocodingClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.GeocodingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:       cfg.BaseURL,
		accessToken:   cfg.AccessToken,
		maxCandidates: cfg.MaxCandidates,
		logger:        logger,
	}
}

type geocodingResponse struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Relevance float64   `json:"relevance"`
		Center    []float64 `json:"center"` // [longitude, latitude]
	} `json:"features"`
}

// Forward resolves a single-line address to coordinate candidates. An empty
// slice with a nil error means the provider answered but found nothing.
func (c *client) Forward(ctx context.Context, address string) ([]domain.GeocodeCandidate, error) {
	if address == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	reqURL := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s&limit=%d",
		c.baseURL,
		url.PathEscape(address),
		c.accessToken,
		c.maxCandidates,
	)

	c.logger.Debug("Calling Mapbox Geocoding API",
		zap.String("address", address),
		zap.Int("limit", c.maxCandidates))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d", resp.StatusCode)
	}

	var geoResp geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	candidates := make([]domain.GeocodeCandidate, 0, len(geoResp.Features))
	for _, f := range geoResp.Features {
		if len(f.Center) != 2 || !utils.ValidateCoordinates(f.Center[1], f.Center[0]) {
			c.logger.Warn("Skipping feature with unusable center coordinates",
				zap.String("place_name", f.PlaceName))
			continue
		}
		candidates = append(candidates, domain.GeocodeCandidate{
			Longitude: f.Center[0],
			Latitude:  f.Center[1],
			PlaceName: f.PlaceName,
			Relevance: f.Relevance,
		})
	}

	c.logger.Debug("Mapbox Geocoding API call successful",
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}
