// Package config loads recgo CLI configuration.
//
// Configuration is layered, later sources overriding earlier ones:
//
//  1. Built-in defaults
//  2. A YAML file (explicit path, $RECGO_CONFIG, or ./recgo.yaml)
//  3. Environment variables prefixed with RECGO_
//
// Environment keys map to config paths by dropping the prefix, lowercasing
// and turning the first underscore into a section separator:
//
//	RECGO_RECOMMEND_NEIGHBORS=20   -> recommend.neighbors
//	RECGO_RECOMMEND_TOP_N=3        -> recommend.top_n
//	RECGO_STORE_BACKEND=s3         -> store.backend
//
// The merged result is validated with go-playground/validator.
package config
