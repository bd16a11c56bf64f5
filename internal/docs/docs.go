// Package docs serves the embedded OpenAPI document.
package docs

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPISpec []byte

// Document is the subset of OpenAPI 3 read back for startup checks and tests.
type Document struct {
	OpenAPI string `yaml:"openapi"`
	Info    struct {
		Title   string `yaml:"title"`
		Version string `yaml:"version"`
	} `yaml:"info"`
	Paths      map[string]map[string]any `yaml:"paths"`
	Components struct {
		Schemas map[string]Schema `yaml:"schemas"`
	} `yaml:"components"`
}

type Schema struct {
	Type       string            `yaml:"type"`
	Required   []string          `yaml:"required"`
	Properties map[string]Schema `yaml:"properties"`
	MaxLength  int               `yaml:"maxLength"`
}

// Raw returns the embedded YAML.
func Raw() []byte {
	return openAPISpec
}

// Load parses the embedded document.
func Load() (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(openAPISpec, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}
	if doc.OpenAPI == "" || len(doc.Paths) == 0 {
		return nil, fmt.Errorf("openapi document is missing version or paths")
	}
	return &doc, nil
}

// Register mounts GET /swagger/openapi.yaml and a redirect from /swagger.
func Register(r gin.IRoutes, version string) {
	body := openAPISpec
	if doc, err := Load(); err == nil && version != "" && doc.Info.Version != version {
		body = withVersion(version)
	}

	r.GET("/swagger/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", body)
	})
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/openapi.yaml")
	})
}

// withVersion rewrites info.version, leaving the original on any error.
func withVersion(version string) []byte {
	var node yaml.Node
	if err := yaml.Unmarshal(openAPISpec, &node); err != nil || len(node.Content) == 0 {
		return openAPISpec
	}

	root := node.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "info" {
			continue
		}
		info := root.Content[i+1]
		for j := 0; j+1 < len(info.Content); j += 2 {
			if info.Content[j].Value == "version" {
				info.Content[j+1].Value = version
			}
		}
	}

	out, err := yaml.Marshal(&node)
	if err != nil {
		return openAPISpec
	}
	return out
}
