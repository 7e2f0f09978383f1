// Package docs Agency Service API.
//
// Identity and geospatial-profile service for disaster-response agencies.
// Provides registration with address geocoding, credential authentication
// with signed session tokens, profile management, and read-side queries
// joining agencies with their resources and disasters.
//
// Capabilities:
// - Agency registration with address-to-coordinate resolution via Mapbox
// - Login issuing a signed bearer token
// - Password change and fill-if-provided profile updates
// - Listing of all agency locations (cached projection)
// - Lookup of an agency with its resources and disasters by name
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- api_key:
//
//	SecurityDefinitions:
//	api_key:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
