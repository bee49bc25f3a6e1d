// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated payloads from handlers and calls repository methods to
// read and persist data.
package service
