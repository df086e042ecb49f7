package main

// General API documentation for swaggo. Regenerate with `swag init -g cmd/textgen/docs.go -o docs`.
//
// @title           textgen API
// @version         1.0
// @description     HTTP front end for causal language model text generation.
//
// @contact.name   textgen maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
