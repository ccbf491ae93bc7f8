// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/animegen/docs.go -o internal/httpapi/docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "List image models",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelsResponse"}}}
            }
        },
        "/api/music/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "List music models",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.MusicModelsResponse"}}}
            }
        },
        "/api/dimensions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "List output size presets",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.DimensionsResponse"}}}
            }
        },
        "/api/generate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["generate"],
                "summary": "Generate images",
                "parameters": [{"description": "generation request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.GenerateRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/music": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["generate"],
                "summary": "Generate an instrumental track",
                "parameters": [{"description": "music request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.MusicRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.MusicResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.Model": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"},
            "style": {"type": "string"}, "speed": {"type": "string"},
            "supportsImage": {"type": "boolean"}, "requiresImage": {"type": "boolean"}, "supportsBackground": {"type": "boolean"}
        }},
        "types.MusicModel": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}
        }},
        "types.Dimension": {"type": "object", "properties": {
            "label": {"type": "string"}, "width": {"type": "integer"}, "height": {"type": "integer"}
        }},
        "types.ModelsResponse": {"type": "object", "properties": {"models": {"type": "array", "items": {"$ref": "#/definitions/types.Model"}}}},
        "types.MusicModelsResponse": {"type": "object", "properties": {"models": {"type": "array", "items": {"$ref": "#/definitions/types.MusicModel"}}}},
        "types.DimensionsResponse": {"type": "object", "properties": {"dimensions": {"type": "array", "items": {"$ref": "#/definitions/types.Dimension"}}}},
        "types.GenerateRequest": {"type": "object", "properties": {
            "modelId": {"type": "string"}, "prompt": {"type": "string"}, "negativePrompt": {"type": "string"},
            "referenceImage": {"type": "string"}, "width": {"type": "integer"}, "height": {"type": "integer"},
            "numOutputs": {"type": "integer"}, "removeBackground": {"type": "boolean"},
            "generationType": {"type": "string", "enum": ["character", "background"]}
        }},
        "types.GenerateResponse": {"type": "object", "properties": {
            "images": {"type": "array", "items": {"type": "string"}}, "model": {"type": "string"}
        }},
        "types.MusicRequest": {"type": "object", "properties": {
            "prompt": {"type": "string"}, "duration": {"type": "number"}, "modelId": {"type": "string"}
        }},
        "types.Track": {"type": "object", "properties": {
            "url": {"type": "string"}, "model": {"type": "string"}, "duration": {"type": "integer"}
        }},
        "types.MusicResponse": {"type": "object", "properties": {"tracks": {"type": "array", "items": {"$ref": "#/definitions/types.Track"}}}},
        "types.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "integer"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "animegen API",
	Description:      "Image and music generation backed by Replicate.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
