// Package httpapi exposes the import and billing services as a JSON HTTP API.
//
// The surface is small: one import endpoint, three billing
// endpoints, the uninstall webhook receiver, and a health probe. Handlers
// translate service sentinel errors into HTTP status codes and never leak
// credentials or internal details into responses.
//
// Import responses use 207 Multi-Status when a batch partially succeeds, so
// callers always get the full per-row outcome regardless of overall status.
package httpapi
