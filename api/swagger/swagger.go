package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "OJT Tracker API",
        "description": "Attendance ledger and progress dashboard for on-the-job training",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Registration and login"},
        {"name": "Sessions", "description": "Clock-in / clock-out state machine"},
        {"name": "Dashboard", "description": "Student attendance aggregates"},
        {"name": "Documents", "description": "Requirement document submissions"},
        {"name": "Cohort", "description": "Coordinator views over a course cohort"},
        {"name": "Admin", "description": "Administrative overview"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register an account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange credentials for a token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/me/clock": {
            "get": {
                "tags": ["Sessions"],
                "security": [{"BearerAuth": []}],
                "summary": "Current clock state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/clock-in": {
            "post": {
                "tags": ["Sessions"],
                "security": [{"BearerAuth": []}],
                "summary": "Open a work session",
                "responses": {
                    "201": {"description": "Session opened", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "A session is already in progress"}
                }
            }
        },
        "/me/clock-out": {
            "post": {
                "tags": ["Sessions"],
                "security": [{"BearerAuth": []}],
                "summary": "Close the open work session",
                "responses": {
                    "200": {"description": "Session closed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No session in progress"},
                    "422": {"description": "Computed duration out of range"}
                }
            }
        },
        "/me/logs": {
            "get": {
                "tags": ["Dashboard"],
                "security": [{"BearerAuth": []}],
                "summary": "Full time-log history, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/logs/today": {
            "get": {
                "tags": ["Dashboard"],
                "security": [{"BearerAuth": []}],
                "summary": "Today's sessions and completed hours",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/stats": {
            "get": {
                "tags": ["Dashboard"],
                "security": [{"BearerAuth": []}],
                "summary": "Aggregate progress figures",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/activity": {
            "get": {
                "tags": ["Dashboard"],
                "security": [{"BearerAuth": []}],
                "summary": "Recent activity feed",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/documents": {
            "get": {
                "tags": ["Documents"],
                "security": [{"BearerAuth": []}],
                "summary": "List own document submissions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Documents"],
                "security": [{"BearerAuth": []}],
                "summary": "Submit a document link",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UploadDocumentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Untrusted host, confirmation required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Validation failed"}
                }
            }
        },
        "/me/documents/{id}": {
            "delete": {
                "tags": ["Documents"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete an own document submission",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/cohort/overview": {
            "get": {
                "tags": ["Cohort"],
                "security": [{"BearerAuth": []}],
                "summary": "Cohort-wide aggregate figures",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cohort/students": {
            "get": {
                "tags": ["Cohort"],
                "security": [{"BearerAuth": []}],
                "summary": "Per-student progress rows",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cohort/students/{id}": {
            "get": {
                "tags": ["Cohort"],
                "security": [{"BearerAuth": []}],
                "summary": "Single student drill-down",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not a student in this cohort"}
                }
            }
        },
        "/cohort/submissions": {
            "get": {
                "tags": ["Cohort"],
                "security": [{"BearerAuth": []}],
                "summary": "Document submissions across the cohort",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cohort/export": {
            "get": {
                "tags": ["Cohort"],
                "security": [{"BearerAuth": []}],
                "summary": "Download the cohort progress table",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "course", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/admin/overview": {
            "get": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Platform-wide counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/users": {
            "get": {
                "tags": ["Admin"],
                "security": [{"BearerAuth": []}],
                "summary": "List registered users",
                "parameters": [
                    {"name": "role", "in": "query", "type": "string"},
                    {"name": "course", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["STUDENT", "COORDINATOR", "ADMIN"]},
                "course": {"type": "string"}
            },
            "required": ["name", "email", "password", "role"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "UploadDocumentRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "type": {"type": "string"},
                "description": {"type": "string"},
                "link": {"type": "string"},
                "confirmed": {"type": "boolean"}
            },
            "required": ["title", "type", "link"]
        },
        "TimeLog": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string"},
                "timeIn": {"type": "string"},
                "timeOut": {"type": "string"},
                "hours": {"type": "number"},
                "status": {"type": "string", "enum": ["IN_PROGRESS", "COMPLETED"]}
            }
        },
        "AggregateStats": {
            "type": "object",
            "properties": {
                "totalHours": {"type": "number"},
                "daysLogged": {"type": "integer"},
                "docCount": {"type": "integer"},
                "progressPercent": {"type": "number"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
