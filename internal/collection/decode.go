package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaV21 is the only collection format pmdocs accepts.
const SchemaV21 = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

type rawCollection struct {
	Info rawInfo   `json:"info"`
	Item []rawItem `json:"item"`
}

type rawInfo struct {
	PostmanID   string `json:"_postman_id"`
	Name        string `json:"name"`
	Description text   `json:"description"`
	Schema      string `json:"schema"`
}

type rawItem struct {
	Name        string          `json:"name"`
	Description text            `json:"description"`
	Request     json.RawMessage `json:"request"`
	Item        []rawItem       `json:"item"`
}

type rawRequest struct {
	Method      string `json:"method"`
	URL         rawURL `json:"url"`
	Description text   `json:"description"`
}

// text is a description: a string, null, or {"content": ..., "type": ...}.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	default:
		var obj struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("description: %w", err)
		}
		*t = text(obj.Content)
		return nil
	}
}

// rawURL is a request URL: a string or an object with a "raw" member.
type rawURL string

func (u *rawURL) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*u = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*u = rawURL(s)
		return nil
	}

	var obj struct {
		Raw      string   `json:"raw"`
		Protocol string   `json:"protocol"`
		Host     []string `json:"host"`
		Path     []string `json:"path"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("url: %w", err)
	}
	if obj.Raw == "" && len(obj.Host) > 0 {
		obj.Raw = strings.Join(obj.Host, ".")
		if obj.Protocol != "" {
			obj.Raw = obj.Protocol + "://" + obj.Raw
		}
		if len(obj.Path) > 0 {
			obj.Raw += "/" + strings.Join(obj.Path, "/")
		}
	}
	*u = rawURL(obj.Raw)
	return nil
}

// DecodeCollection decodes a Postman API collection response
// ({"collection": {...}}) after checking it against the v2.1 envelope schema.
func DecodeCollection(data []byte) (*Collection, error) {
	if err := validate(collectionSchema, data); err != nil {
		return nil, err
	}

	var envelope struct {
		Collection rawCollection `json:"collection"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}

	raw := envelope.Collection
	root := &Folder{
		Name:        raw.Info.Name,
		Description: string(raw.Info.Description),
	}
	children, err := convertItems(raw.Item)
	if err != nil {
		return nil, err
	}
	root.Children = children

	return &Collection{
		ID:     raw.Info.PostmanID,
		Schema: raw.Info.Schema,
		Root:   root,
	}, nil
}

// DecodeWorkspace decodes a Postman API workspace response ({"workspace": {...}}).
func DecodeWorkspace(data []byte) (*Workspace, error) {
	if err := validate(workspaceSchema, data); err != nil {
		return nil, err
	}

	var envelope struct {
		Workspace Workspace `json:"workspace"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding workspace: %w", err)
	}
	return &envelope.Workspace, nil
}

// convertItems maps raw items to nodes. An item with a non-null request is a
// Request, anything else is a Folder.
func convertItems(items []rawItem) ([]Node, error) {
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		if !hasRequest(item.Request) {
			children, err := convertItems(item.Item)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &Folder{
				Name:        item.Name,
				Description: string(item.Description),
				Children:    children,
			})
			continue
		}

		req, err := convertRequest(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, req)
	}
	return nodes, nil
}

func hasRequest(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// convertRequest handles both the object form and the bare-URL string form.
func convertRequest(item rawItem) (*Request, error) {
	raw := bytes.TrimSpace(item.Request)

	var req rawRequest
	if raw[0] == '"' {
		var url string
		if err := json.Unmarshal(raw, &url); err != nil {
			return nil, fmt.Errorf("request %q: %w", item.Name, err)
		}
		req.URL = rawURL(url)
	} else if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("request %q: %w", item.Name, err)
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = "GET"
	}

	return &Request{
		Name:        item.Name,
		Method:      method,
		URL:         string(req.URL),
		Description: string(req.Description),
	}, nil
}
