// Package docs holds the OpenAPI description served at /swagger/*.
// Regenerate with: swag init -g cmd/reviewdesk/main.go
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
        "/api/documents": {
            "get": {
                "produces": ["application/json"],
                "summary": "List tracked documents",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.documentsResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/approve": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Approve the draft of a document",
                "parameters": [{"description": "document", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.filenameRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.documentsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/convert": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Convert an approved document to PDF",
                "parameters": [{"description": "document", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.filenameRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.documentsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/send-final": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Email the final PDF of an approved document",
                "parameters": [{"description": "document", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.filenameRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.documentsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/activity": {
            "get": {
                "produces": ["application/json"],
                "summary": "Recent workflow activity",
                "parameters": [
                    {"type": "string", "description": "restrict to one document", "name": "filename", "in": "query"},
                    {"type": "integer", "default": 50, "description": "max entries", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Activity"}}}
                }
            }
        },
        "/api/archive/{name}": {
            "get": {
                "summary": "Redirect to an archived PDF",
                "parameters": [{"type": "string", "description": "pdf name", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "302": {"description": "Found"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.filenameRequest": {
            "type": "object",
            "properties": {"filename": {"type": "string"}}
        },
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {"request_id": {"type": "string"}, "error": {"$ref": "#/definitions/handler.errorEnvelope"}}
        },
        "model.DocumentRecord": {
            "type": "object",
            "properties": {"filename": {"type": "string"}, "hasDraft": {"type": "boolean"}, "approved": {"type": "boolean"}}
        },
        "model.Activity": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "action": {"type": "string"},
                "filename": {"type": "string"},
                "outcome": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "service.Notice": {
            "type": "object",
            "properties": {"level": {"type": "string"}, "text": {"type": "string"}}
        },
        "view.Row": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "original_url": {"type": "string"},
                "draft_url": {"type": "string"},
                "can_approve": {"type": "boolean"},
                "can_convert": {"type": "boolean"},
                "can_send_final": {"type": "boolean"}
            }
        },
        "handler.documentsResponse": {
            "type": "object",
            "properties": {
                "notice": {"$ref": "#/definitions/service.Notice"},
                "open_url": {"type": "string"},
                "documents": {"type": "array", "items": {"$ref": "#/definitions/model.DocumentRecord"}},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/view.Row"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Review Desk API",
	Description:      "Console for the document review workflow service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
