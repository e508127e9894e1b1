// Package docs holds the swagger specification. Regenerate with
// `swag init -g cmd/inferd/docs.go -o docs` after changing annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/generate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Run one generation against the loaded model",
                "parameters": [
                    {
                        "description": "generation request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.GenerateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/recommend": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Recommend university majors from questionnaire answers",
                "parameters": [
                    {
                        "description": "questionnaire answers",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.RecommendRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.RecommendResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["text/plain"],
                "summary": "Readiness of the service (200 only while serving)",
                "responses": {
                    "200": {"description": "ok", "schema": {"type": "string"}},
                    "503": {"description": "unavailable", "schema": {"type": "string"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "summary": "Detailed service status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.GenerateRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string", "example": "Write a haiku about the ocean."},
                "max_tokens": {"type": "integer", "example": 128},
                "temperature": {"type": "number", "example": 0.7},
                "top_p": {"type": "number", "example": 0.9},
                "top_k": {"type": "integer", "example": 40},
                "stop": {"type": "array", "items": {"type": "string"}},
                "seed": {"type": "integer", "example": 42}
            }
        },
        "types.GenerateResponse": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "tokens": {"type": "integer", "example": 97},
                "truncated": {"type": "boolean", "example": false},
                "duration_ms": {"type": "integer", "example": 1843}
            }
        },
        "types.RecommendRequest": {
            "type": "object",
            "properties": {
                "interest_fields": {"type": "array", "items": {"type": "string"}},
                "qualities": {"type": "array", "items": {"type": "string"}},
                "free_time_activities": {"type": "array", "items": {"type": "string"}},
                "intrinsic_motivation": {"type": "integer", "example": 5},
                "identified_regulation": {"type": "integer", "example": 4},
                "introjected_regulation": {"type": "integer", "example": 2},
                "integrated_regulation": {"type": "integer", "example": 3},
                "amotivation": {"type": "integer", "example": 1},
                "external_regulation": {"type": "integer", "example": 2}
            }
        },
        "types.RecommendResponse": {
            "type": "object",
            "properties": {
                "recommendation": {"type": "string"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "prompt is required"},
                "code": {"type": "string", "example": "invalid_request"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "example": "ready"},
                "model": {"$ref": "#/definitions/types.ModelStatus"},
                "inflight": {"type": "integer", "example": 1},
                "queue_len": {"type": "integer", "example": 0},
                "concurrency": {"type": "integer", "example": 1},
                "queue_depth": {"type": "integer", "example": 32},
                "requests_total": {"type": "integer", "example": 120},
                "tokens_out_total": {"type": "integer", "example": 15360},
                "uptime_seconds": {"type": "integer", "example": 3600},
                "server_time_unix": {"type": "integer", "example": 1700000000}
            }
        },
        "types.ModelStatus": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "zephyr-7b-beta.Q5_0"},
                "path": {"type": "string", "example": "/models/zephyr-7b-beta.Q5_0.gguf"},
                "ctx_size": {"type": "integer", "example": 4096}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "inferd API",
	Description:      "HTTP front door for a single locally loaded LLM.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
