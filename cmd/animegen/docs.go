package main

// General API documentation for swaggo. Regenerate internal/httpapi/docs with
// `swag init -g cmd/animegen/docs.go -o internal/httpapi/docs`.
//
// @title           animegen API
// @version         1.0
// @description     Anime character, background and music generation backed by Replicate.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
