package permissions

import (
	_ "embed"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission binds a route pattern and method to the capability it requires.
// Skip marks public routes that need no bearer token.
type Permission struct {
	Path       string     `json:"path"`
	Method     string     `json:"method"`
	Capability Capability `json:"capability,omitempty"`
	Skip       bool       `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return path
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = normalizePath(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return normalizePath(rp.Path) == path && strings.EqualFold(rp.Method, method)
	})

	if idx == -1 {
		return Permission{Path: path, Method: method}
	}

	return r.Endpoints[idx]
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}

// Parse decodes a permission table and rejects unknown capabilities.
func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, err //nolint:wrapcheck
	}

	for _, endpoint := range permissions.Endpoints {
		if endpoint.Capability != "" && !endpoint.Capability.Valid() {
			return nil, &UnknownCapabilityError{Capability: endpoint.Capability, Path: endpoint.Path}
		}
	}

	return &permissions, nil
}
