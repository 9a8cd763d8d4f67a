package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// client is a minimal HTTP client for one peer's JSON API.
type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) *client {
	return &client{baseURL: baseURL, http: &http.Client{Timeout: 5 * time.Second}}
}

func (c *client) post(path string, body map[string]any) (int, map[string]any, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out, nil
}

func (c *client) addNode(id string) (int, map[string]any, error) {
	return c.post("/api/v1/add_node", map[string]any{"node_id": id})
}

func (c *client) removeNode(id string) (int, map[string]any, error) {
	return c.post("/api/v1/remove_node", map[string]any{"node_id": id})
}

func (c *client) addEdge(a, b string) (int, map[string]any, error) {
	return c.post("/api/v1/add_edge", map[string]any{"node_a_id": a, "node_b_id": b})
}

func (c *client) removeEdge(a, b string) (int, map[string]any, error) {
	return c.post("/api/v1/remove_edge", map[string]any{"node_a_id": a, "node_b_id": b})
}

func (c *client) getNode(id string) (int, map[string]any, error) {
	return c.post("/api/v1/get_node", map[string]any{"node_id": id})
}

func (c *client) getEdge(a, b string) (int, map[string]any, error) {
	return c.post("/api/v1/get_edge", map[string]any{"node_a_id": a, "node_b_id": b})
}

func (c *client) getNeighbors(id string) (int, map[string]any, error) {
	return c.post("/api/v1/get_neighbors", map[string]any{"node_id": id})
}

func (c *client) shortestPath(a, b string) (int, map[string]any, error) {
	return c.post("/api/v1/shortest_path", map[string]any{"node_a_id": a, "node_b_id": b})
}
