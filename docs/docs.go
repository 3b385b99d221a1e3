// Package docs registers the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/admin/login": {
            "post": {
                "tags": ["auth"], "summary": "Exchange the admin password for an access token",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/auth.AdminLoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}, "401": {"description": "Unauthorized"}}
            }
        },
        "/booths": {
            "get": {"tags": ["booths"], "summary": "List booths", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}}
        },
        "/teams": {
            "get": {"tags": ["teams"], "summary": "List teams available at registration", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}}
        },
        "/cards": {
            "post": {
                "tags": ["cards"], "summary": "Open a stamp card",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/attendees.RegisterCardRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}
            }
        },
        "/cards/{id}/stamps": {
            "post": {
                "tags": ["cards"], "summary": "Collect a booth stamp with the scanned booth code",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/attendees.CollectStampRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}, "422": {"description": "Wrong code"}}
            }
        },
        "/cards/{id}/submission": {
            "get": {"tags": ["cards"], "summary": "Lucky draw token and QR code", "produces": ["application/json"],
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}, "422": {"description": "Not eligible"}}}
        },
        "/admin/draws/sessions": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["draws"], "summary": "Start a lucky draw session", "produces": ["application/json"],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}}
        },
        "/admin/draws/sessions/{id}/roster": {
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["draws"], "summary": "Replace the roster with pasted participant data",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/draws.ReplaceRosterRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}
            }
        },
        "/admin/draws/sessions/{id}/scan": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["draws"], "summary": "Add a scanned attendee token to the roster",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/draws.ScanRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}, "422": {"description": "Invalid or ineligible token"}}
            }
        },
        "/admin/draws/sessions/{id}/draw": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["draws"], "summary": "Draw winners from the eligible roster",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/draws.DrawRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}, "409": {"description": "Draw in progress"}, "422": {"description": "Invalid count or pool"}}
            }
        },
        "/admin/draws/sessions/{id}/export": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["draws"], "summary": "Download eligible participants as CSV", "produces": ["text/csv"],
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}}
        },
        "/admin/draws/history": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["draws"], "summary": "List past draws, newest first", "produces": ["application/json"],
                "parameters": [{"type": "integer", "in": "query", "name": "limit"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}}
        }
    },
    "definitions": {
        "response.StandardApiResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "status_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        },
        "auth.AdminLoginRequest": {"type": "object", "required": ["password"], "properties": {"password": {"type": "string"}}},
        "attendees.RegisterCardRequest": {"type": "object", "required": ["name", "team"], "properties": {"name": {"type": "string"}, "team": {"type": "string"}}},
        "attendees.CollectStampRequest": {"type": "object", "required": ["booth_id", "code"], "properties": {"booth_id": {"type": "integer"}, "code": {"type": "string"}}},
        "draws.ReplaceRosterRequest": {"type": "object", "properties": {"roster": {"type": "string"}}},
        "draws.ScanRequest": {"type": "object", "required": ["token"], "properties": {"token": {"type": "string"}}},
        "draws.DrawRequest": {"type": "object", "properties": {"winners": {"type": "integer"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Stamp Card & Lucky Draw API",
	Description:      "Booth stamp cards for attendees and the admin lucky draw.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
