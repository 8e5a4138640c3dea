// Package docs holds the OpenAPI document served at /docs.
// Keep it in step with the godoc annotations on the handlers.
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
        "/api/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List all books on the shelf",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/data.Book"}}
                    },
                    "500": {"description": "Internal Server Error"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Add a book to the shelf",
                "parameters": [
                    {
                        "description": "JSON payload required to create a book",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.CreateBookRequestBody"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/data.Book"}},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/books/fetch-amazon": {
            "get": {
                "description": "Extracts the ASIN from a /dp/<ASIN> URL and looks it up. Placeholder details are returned when no provider is configured.",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Resolve book details from a marketplace product URL",
                "parameters": [
                    {"type": "string", "description": "Product page URL", "name": "url", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/data.BookDetails"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/books/search": {
            "get": {
                "description": "Case-insensitive substring match. An empty q matches every book.",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Search books by title, author or genre",
                "parameters": [
                    {"type": "string", "description": "Search text", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/data.Book"}}
                    },
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/books/{id}": {
            "delete": {
                "tags": ["books"],
                "summary": "Delete a book",
                "parameters": [
                    {"type": "integer", "description": "ID of book to delete", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            },
            "patch": {
                "description": "Empty isbn, publishedYear, genre or amazonUrl values keep the stored value. A null title, author, cover or userId is rejected.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Partially update a book",
                "parameters": [
                    {"type": "integer", "description": "ID of book to update", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Fields to change",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.UpdateBookRequestBody"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/data.Book"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/books/{id}/cover": {
            "put": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Upload a cover image for a book",
                "parameters": [
                    {"type": "integer", "description": "ID of book", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "JPEG or PNG image, at most 2MB", "name": "cover", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/data.Book"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "413": {"description": "Request Entity Too Large"},
                    "415": {"description": "Unsupported Media Type"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/api/healthcheck": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Report service status",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "data.Book": {
            "type": "object",
            "properties": {
                "amazonUrl": {"type": "string"},
                "author": {"type": "string"},
                "cover": {"type": "string"},
                "genre": {"type": "string"},
                "id": {"type": "integer"},
                "isbn": {"type": "string"},
                "publishedYear": {"type": "integer"},
                "title": {"type": "string"},
                "userId": {"type": "integer"}
            }
        },
        "data.BookDetails": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "cover": {"type": "string"},
                "genre": {"type": "string"},
                "isbn": {"type": "string"},
                "publishedYear": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "dto.CreateBookRequestBody": {
            "type": "object",
            "properties": {
                "amazonUrl": {"type": "string"},
                "author": {"type": "string"},
                "cover": {"type": "string"},
                "genre": {"type": "string"},
                "isbn": {"type": "string"},
                "publishedYear": {"type": "integer"},
                "title": {"type": "string"},
                "userId": {"type": "integer"}
            }
        },
        "dto.UpdateBookRequestBody": {
            "type": "object",
            "properties": {
                "amazonUrl": {"type": "string"},
                "author": {"type": "string"},
                "cover": {"type": "string"},
                "genre": {"type": "string"},
                "isbn": {"type": "string"},
                "publishedYear": {"type": "integer"},
                "title": {"type": "string"},
                "userId": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Shelf API",
	Description:      "A personal bookshelf with marketplace metadata lookups.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
