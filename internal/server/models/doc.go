// Package models defines the records held by the entity store and returned
// by the REST API. JSON field names follow the dashboard client's camelCase
// convention.
package models
