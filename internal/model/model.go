// Package model holds the Item record and the request payloads that
// map wire JSON onto it.
package model
