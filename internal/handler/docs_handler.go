package handler

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML []byte

// DocsHandler はAPIドキュメント（OpenAPI 3）を配信するハンドラー。
type DocsHandler struct {
	rawYAML []byte
	json    []byte
}

// NewDocsHandler は埋め込みのOpenAPIドキュメントを解析してDocsHandlerを生成する。
// ドキュメントが不正な場合は起動時にエラーを返す。
func NewDocsHandler() (*DocsHandler, error) {
	return newDocsHandler(openAPIYAML)
}

func newDocsHandler(raw []byte) (*DocsHandler, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	if _, ok := doc["openapi"]; !ok {
		return nil, fmt.Errorf("OpenAPI document has no openapi version field")
	}
	if _, ok := doc["paths"].(map[string]any); !ok {
		return nil, fmt.Errorf("OpenAPI document has no paths")
	}

	encoded, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}
	return &DocsHandler{rawYAML: raw, json: encoded}, nil
}

// JSON はOpenAPIドキュメントをJSONで返す。
// GET /api-docs
func (h *DocsHandler) JSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(h.json)
}

// YAML は埋め込みのOpenAPIドキュメントをそのまま返す。
// GET /api-docs/openapi.yaml
func (h *DocsHandler) YAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(h.rawYAML)
}

// normalizeYAML はJSONに変換できるよう、文字列以外のキーを持つマップを文字列キーに揃える。
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalizeYAML(child)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, child := range t {
			m[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return m
	case []any:
		for i, child := range t {
			t[i] = normalizeYAML(child)
		}
		return t
	default:
		return v
	}
}
