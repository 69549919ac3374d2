// Package docs registers the Swagger description of the directory API with swag.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "description": "Checks the built-in accounts, then doctor credentials. The response names the landing view for the resolved role.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Identifier and secret", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {
                    "204": {"description": "No Content"},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/auth/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.currentSessionResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/auth/password": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Change a doctor secret",
                "parameters": [
                    {"description": "Doctor identifier, current and new secret", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.changePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.changePasswordResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/auth/external": {
            "post": {
                "security": [{"ProviderToken": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Adopt an external identity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/admin/doctors": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Register a doctor",
                "parameters": [
                    {"type": "string", "description": "session_id returned by login", "name": "X-Session-ID", "in": "header", "required": true},
                    {"description": "Doctor profile and credential", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerDoctorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerDoctorResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.changePasswordRequest": {
            "type": "object",
            "required": ["new_secret"],
            "properties": {
                "identifier": {"type": "string"},
                "current_secret": {"type": "string"},
                "new_secret": {"type": "string"}
            }
        },
        "handler.changePasswordResponse": {
            "type": "object",
            "properties": {
                "changed": {"type": "boolean"},
                "session_cleared": {"type": "boolean"}
            }
        },
        "handler.currentSessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "landing": {"type": "string"},
                "session": {"$ref": "#/definitions/handler.sessionResponse"}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.doctorCredentialRequest": {
            "type": "object",
            "required": ["secret"],
            "properties": {
                "email": {"type": "string"},
                "username": {"type": "string"},
                "secret": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "identifier": {"type": "string"},
                "secret": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "landing": {"type": "string"},
                "session": {"$ref": "#/definitions/handler.sessionResponse"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}}
            }
        },
        "handler.registerDoctorRequest": {
            "type": "object",
            "required": ["id", "name"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "specialty": {"type": "string"},
                "location": {"type": "string"},
                "languages": {"type": "array", "items": {"type": "string"}},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "website": {"type": "string"},
                "approved": {"type": "boolean"},
                "credential": {"$ref": "#/definitions/handler.doctorCredentialRequest"}
            }
        },
        "handler.registerDoctorResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "identifiers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "role_specific_id": {"type": "string"},
                "provider": {"type": "string"},
                "issued_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ProviderToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Doctor Directory Identity API",
	Description:      "Sign-in, session and doctor credential management for the doctor directory.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
