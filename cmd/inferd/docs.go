package main

// General API documentation for swaggo. Regenerate with
// `swag init -g cmd/inferd/docs.go -o docs`.
//
// @title           inferd API
// @version         1.0
// @description     HTTP front door for a single locally loaded LLM: bounded
// @description     concurrent generation plus a questionnaire-driven major
// @description     recommendation endpoint.
//
// @contact.name   inferd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
