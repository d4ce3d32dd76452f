// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Valid token cookie required
)

// EndpointSecurityConfig maps "METHOD path-template" routes to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"POST /jwt":    SecurityPublic,
	"POST /logout": SecurityPublic,

	// Posts - Public
	"GET /posts":          SecurityPublic,
	"GET /featured-posts": SecurityPublic,

	// Posts - Access Protected
	"GET /post/{id}":        SecurityAccess,
	"GET /my-posts/{email}": SecurityAccess,
	"POST /posts":           SecurityAccess,
	"PUT /post/{id}":        SecurityAccess,
	"DELETE /post/{id}":     SecurityAccess,

	// Volunteer requests - Access Protected
	"GET /my-volunteer-requests/{email}": SecurityAccess,
	"GET /manage-requests/{email}":       SecurityAccess,
	"POST /request-volunteer":            SecurityAccess,
	"DELETE /request/{id}":               SecurityAccess,
	"PATCH /request/approve/{id}":        SecurityAccess,
	"PATCH /request/reject/{id}":         SecurityAccess,

	// Contact & ops - Public
	"POST /contact-message": SecurityPublic,
	"GET /db-ping":          SecurityPublic,
	"GET /":                 SecurityPublic,
	"GET /metrics":          SecurityPublic,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(method, pathTemplate string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method+" "+pathTemplate]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
