package offline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPSender posts samples to the dispatch API's location endpoint.
type HTTPSender struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewHTTPSender(baseURL, token string) *HTTPSender {
	return &HTTPSender{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		token:   token,
	}
}

func (s *HTTPSender) Send(ctx context.Context, sample Sample) error {
	body, err := json.Marshal(map[string]float64{
		"latitude":  sample.Latitude,
		"longitude": sample.Longitude,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/api/location", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("location report rejected with status %d", resp.StatusCode)
	}
	return nil
}
