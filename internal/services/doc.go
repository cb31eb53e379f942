// Package services holds the business logic behind the HTTP handlers.
// Services read the pipeline's JSON artifacts from disk and expose them
// to the transport layer; they hold no long-lived state beyond their
// configuration.
package services
