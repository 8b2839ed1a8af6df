package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"loadboard/internal/loads"
	"loadboard/internal/reporting"
)

// Client is a thin wrapper over the loadboard HTTP API.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type apiError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func (c *Client) do(method, path string, query url.Values, in, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.APIKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var ae apiError
		if err := json.NewDecoder(resp.Body).Decode(&ae); err == nil && ae.Error != "" {
			if len(ae.Fields) > 0 {
				parts := make([]string, 0, len(ae.Fields))
				for k, v := range ae.Fields {
					parts = append(parts, k+" "+v)
				}
				return fmt.Errorf("%s (%s): %s", ae.Error, resp.Status, strings.Join(parts, ", "))
			}
			return fmt.Errorf("%s (%s)", ae.Error, resp.Status)
		}
		return fmt.Errorf("request failed: %s", resp.Status)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ListShipments(query url.Values) ([]loads.Load, error) {
	var out []loads.Load
	err := c.do(http.MethodGet, "/shipments", query, nil, &out)
	return out, err
}

func (c *Client) GetShipment(ref string) (loads.Load, error) {
	var out loads.Load
	err := c.do(http.MethodGet, "/shipments/"+url.PathEscape(ref), nil, nil, &out)
	return out, err
}

func (c *Client) CreateShipment(req loads.CreateLoadRequest) (loads.Load, error) {
	var out loads.Load
	err := c.do(http.MethodPost, "/shipments", nil, req, &out)
	return out, err
}

func (c *Client) DeleteShipment(ref string) error {
	return c.do(http.MethodDelete, "/shipments/"+url.PathEscape(ref), nil, nil, nil)
}

func (c *Client) Stats(query url.Values) (reporting.AssignmentStats, error) {
	var out reporting.AssignmentStats
	err := c.do(http.MethodGet, "/shipments/stats", query, nil, &out)
	return out, err
}

func (c *Client) AddPhoneCall(ref string, req loads.PhoneCallRequest) (loads.PhoneCall, error) {
	var out loads.PhoneCall
	err := c.do(http.MethodPost, "/shipments/"+url.PathEscape(ref)+"/phone-calls", nil, req, &out)
	return out, err
}

func (c *Client) ListPhoneCalls(ref string) ([]loads.PhoneCall, error) {
	var out []loads.PhoneCall
	err := c.do(http.MethodGet, "/shipments/"+url.PathEscape(ref)+"/phone-calls", nil, nil, &out)
	return out, err
}

func (c *Client) ClearPhoneCalls(ref string) (int, error) {
	var out struct {
		Deleted int `json:"deleted"`
	}
	err := c.do(http.MethodDelete, "/shipments/"+url.PathEscape(ref)+"/phone-calls", nil, nil, &out)
	return out.Deleted, err
}

func (c *Client) ListAllPhoneCalls(query url.Values) ([]loads.PhoneCall, error) {
	var out []loads.PhoneCall
	err := c.do(http.MethodGet, "/phone-calls", query, nil, &out)
	return out, err
}
