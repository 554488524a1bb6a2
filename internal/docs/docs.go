// Package docs registers the OpenAPI document of the JSON API with swag so that
// http-swagger can serve it at /swagger/doc.json.
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
        "/owners": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Search owners",
                "parameters": [
                    {"type": "string", "description": "last name prefix", "name": "lastName", "in": "query"},
                    {"type": "string", "description": "exact 10-digit telephone", "name": "telephone", "in": "query"},
                    {"type": "string", "description": "city substring", "name": "city", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/OwnerPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Create an owner",
                "parameters": [
                    {"name": "owner", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OwnerInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Owner"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/owners/{ownerId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Get an owner with pets and visits",
                "parameters": [
                    {"type": "integer", "name": "ownerId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Owner"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Update an owner",
                "parameters": [
                    {"type": "integer", "name": "ownerId", "in": "path", "required": true},
                    {"name": "owner", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OwnerInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Owner"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Identity mismatch", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/owners/{ownerId}/pets": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Add a pet to an owner",
                "parameters": [
                    {"type": "integer", "name": "ownerId", "in": "path", "required": true},
                    {"name": "pet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PetInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Pet"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/owners/{ownerId}/pets/{petId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Get a pet of an owner",
                "parameters": [
                    {"type": "integer", "name": "ownerId", "in": "path", "required": true},
                    {"type": "integer", "name": "petId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Pet"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Update a pet",
                "parameters": [
                    {"type": "integer", "name": "ownerId", "in": "path", "required": true},
                    {"type": "integer", "name": "petId", "in": "path", "required": true},
                    {"name": "pet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PetInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Pet"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/owners/{ownerId}/pets/{petId}/visits": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["visits"],
                "summary": "Book a visit",
                "parameters": [
                    {"type": "integer", "name": "ownerId", "in": "path", "required": true},
                    {"type": "integer", "name": "petId", "in": "path", "required": true},
                    {"name": "visit", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VisitInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Visit"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/pettypes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "List pet types",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/PetType"}}}
                }
            }
        },
        "/vets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vets"],
                "summary": "Vet directory page",
                "parameters": [
                    {"type": "string", "description": "last name prefix", "name": "lastName", "in": "query"},
                    {"type": "string", "description": "specialty name or none", "name": "specialty", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/VetDirectory"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/visits/upcoming": {
            "get": {
                "produces": ["application/json"],
                "tags": ["visits"],
                "summary": "Visits from today through today+days",
                "parameters": [
                    {"type": "integer", "default": 7, "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Upcoming"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/health/live": {
            "get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Store unavailable"}}
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "field_errors": {"type": "array", "items": {"$ref": "#/definitions/FieldError"}}
            }
        },
        "FieldError": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
        },
        "OwnerInput": {
            "type": "object",
            "required": ["firstName", "lastName", "address", "city", "telephone"],
            "properties": {
                "id": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "telephone": {"type": "string", "pattern": "^[0-9]{10}$"}
            }
        },
        "Owner": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "telephone": {"type": "string"},
                "pets": {"type": "array", "items": {"$ref": "#/definitions/Pet"}}
            }
        },
        "OwnerPage": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/Owner"}},
                "total": {"type": "integer"},
                "currentPage": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "PetInput": {
            "type": "object",
            "required": ["name", "birthDate", "type"],
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "birthDate": {"type": "string", "format": "date"},
                "type": {"type": "string", "description": "pet type id"}
            }
        },
        "PetType": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "Pet": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "ownerId": {"type": "integer"},
                "name": {"type": "string"},
                "birthDate": {"type": "string", "format": "date-time"},
                "type": {"$ref": "#/definitions/PetType"},
                "visits": {"type": "array", "items": {"$ref": "#/definitions/Visit"}}
            }
        },
        "VisitInput": {
            "type": "object",
            "required": ["description"],
            "properties": {
                "date": {"type": "string", "format": "date", "description": "defaults to today"},
                "description": {"type": "string"}
            }
        },
        "Visit": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "petId": {"type": "integer"},
                "date": {"type": "string", "format": "date-time"},
                "description": {"type": "string"}
            }
        },
        "UpcomingVisit": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "petId": {"type": "integer"},
                "date": {"type": "string", "format": "date-time"},
                "description": {"type": "string"},
                "pet": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}},
                "owner": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "integer"},
                        "firstName": {"type": "string"},
                        "lastName": {"type": "string"}
                    }
                }
            }
        },
        "Upcoming": {
            "type": "object",
            "properties": {
                "days": {"type": "integer"},
                "from": {"type": "string", "format": "date-time"},
                "to": {"type": "string", "format": "date-time"},
                "visits": {"type": "array", "items": {"$ref": "#/definitions/UpcomingVisit"}}
            }
        },
        "Specialty": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "Vet": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "specialties": {"type": "array", "items": {"$ref": "#/definitions/Specialty"}}
            }
        },
        "VetDirectory": {
            "type": "object",
            "properties": {
                "specialties": {"type": "array", "items": {"type": "string"}},
                "selectedSpecialty": {"type": "string"},
                "lastName": {"type": "string"},
                "currentPage": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "listVets": {"type": "array", "items": {"$ref": "#/definitions/Vet"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Petclinic API",
	Description:      "Owners, pets, visits and the vet directory of the pet clinic.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
