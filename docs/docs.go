// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/api/owners": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "List owners",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope"}}
                }
            }
        },
        "/api/owners/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Get an owner",
                "parameters": [
                    {"type": "string", "description": "Owner id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope"}}
                }
            }
        },
        "/api/properties": {
            "get": {
                "description": "Without query parameters every property is returned. Name matches name or address.",
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "List or search properties",
                "parameters": [
                    {"type": "string", "description": "Name or address contains (case-insensitive)", "name": "name", "in": "query"},
                    {"type": "string", "description": "Address contains, used when name is empty", "name": "address", "in": "query"},
                    {"type": "number", "description": "Inclusive lower price bound", "name": "minPrice", "in": "query"},
                    {"type": "number", "description": "Inclusive upper price bound", "name": "maxPrice", "in": "query"},
                    {"type": "integer", "description": "1-based page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (1..100)", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Envelope"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "Create a property",
                "parameters": [
                    {"description": "Property", "name": "property", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.PropertyDto"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Envelope"}}
                }
            }
        },
        "/api/properties/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "Get a property with its owner",
                "parameters": [
                    {"type": "string", "description": "Property id (24 hex characters)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Envelope"}}
                }
            },
            "put": {
                "description": "Replaces the scalar fields. Images and traces are kept.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "Update a property",
                "parameters": [
                    {"type": "string", "description": "Property id", "name": "id", "in": "path", "required": true},
                    {"description": "Property", "name": "property", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.PropertyDto"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Envelope"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "Delete a property",
                "parameters": [
                    {"type": "string", "description": "Property id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope"}}
                }
            }
        },
        "/api/properties/{id}/images": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "Upload an image for a property",
                "parameters": [
                    {"type": "string", "description": "Property id", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "Image", "name": "file", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Shown as the cover candidate (default true)", "name": "enabled", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Envelope"}}
                }
            }
        },
        "/api/properties/{id}/traces": {
            "get": {
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "Sale history of a property",
                "parameters": [
                    {"type": "string", "description": "Property id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "Record a sale",
                "parameters": [
                    {"type": "string", "description": "Property id", "name": "id", "in": "path", "required": true},
                    {"description": "Sale", "name": "trace", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.TraceDto"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Envelope"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Run every health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "model.Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "message": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "model.OwnerDto": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "photo": {"type": "string"},
                "birthday": {"type": "string"}
            }
        },
        "model.PropertyDto": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "idOwner": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "price": {"type": "number"},
                "codeInternal": {"type": "string"},
                "year": {"type": "integer"},
                "image": {"type": "string"},
                "owner": {"$ref": "#/definitions/model.OwnerDto"}
            }
        },
        "model.TraceDto": {
            "type": "object",
            "properties": {
                "dateSale": {"type": "string"},
                "name": {"type": "string"},
                "value": {"type": "number"},
                "tax": {"type": "number"}
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
	Title:            "Real Estate API",
	Description:      "Property listings backed by a document store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
