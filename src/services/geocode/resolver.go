package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"attendance-backend/src/models"
	"attendance-backend/src/utils"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// Resolver reverse geocode พิกัดเป็นชื่อสถานที่ ผ่าน HTTP endpoint แบบ Nominatim
// ล้มเหลวเมื่อไหร่ก็คืน models.UnknownLocation
type Resolver struct {
	baseURL string
	client  *http.Client
	cache   *redis.Client
}

// NewResolver baseURL ว่าง = ไม่เรียกภายนอก, cache เป็น nil ได้
func NewResolver(baseURL string, timeout time.Duration, cache *redis.Client) *Resolver {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Resolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		cache:   cache,
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

func (r *Resolver) Resolve(ctx context.Context, in models.LocationInput) string {
	if addr := strings.TrimSpace(in.Address); addr != "" {
		return addr
	}
	if !in.HasCoordinates() {
		return models.UnknownLocation
	}

	key := fmt.Sprintf("geocode:%.5f,%.5f", *in.Latitude, *in.Longitude)
	if name, ok := utils.CacheGet(ctx, r.cache, key); ok {
		return name
	}

	name, err := r.lookup(ctx, *in.Latitude, *in.Longitude)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return models.UnknownLocation
	}
	utils.CacheSet(ctx, r.cache, key, name, cacheTTL)
	return name
}

// lookup error ทุกกรณีห่อด้วย models.ErrLocationUnavailable
func (r *Resolver) lookup(ctx context.Context, lat, lng float64) (string, error) {
	name, err := r.reverse(ctx, lat, lng)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrLocationUnavailable, err)
	}
	return name, nil
}

func (r *Resolver) reverse(ctx context.Context, lat, lng float64) (string, error) {
	if r.baseURL == "" {
		return "", fmt.Errorf("geocoder not configured")
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "attendance-backend")

	res, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %s", res.Status)
	}

	var out reverseResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.DisplayName == "" {
		return "", fmt.Errorf("geocoder returned empty display_name")
	}
	return out.DisplayName, nil
}
