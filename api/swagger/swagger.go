package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "NU Admission API",
        "description": "Admission portal backend: applicant registration, enrollment chance scoring and registrar reporting",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Applicants", "description": "Applicant registration and records"},
        {"name": "Auth", "description": "Staff authentication"},
        {"name": "Dashboard", "description": "Enrollment analytics"},
        {"name": "Exports", "description": "Registrar sheet downloads"}
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
                    "200": {"description": "Ready"}
                }
            }
        },
        "/applicants": {
            "get": {
                "tags": ["Applicants"],
                "summary": "List applicants",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "program", "in": "query", "type": "string"},
                    {"name": "entry_level", "in": "query", "type": "string"},
                    {"name": "school_year", "in": "query", "type": "string"},
                    {"name": "enrolled", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Applicants"],
                "summary": "Register applicant",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterApplicantRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applicants/{id}": {
            "get": {
                "tags": ["Applicants"],
                "summary": "Get applicant",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Applicants"],
                "summary": "Update applicant",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateApplicantRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Applicants"],
                "summary": "Delete applicant",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/applicants/rescore": {
            "post": {
                "tags": ["Applicants"],
                "summary": "Recompute enrollment chance for all applicants",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Staff login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Enrollment summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/applicants": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download applicant roster",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "Applicant": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "student_id": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "mobile_number": {"type": "string"},
                "program_first_choice": {"type": "string"},
                "program_second_choice": {"type": "string"},
                "entry_level": {"type": "string"},
                "school_year": {"type": "string"},
                "school_term": {"type": "string"},
                "enrollment_chance": {"type": "number"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "RegisterApplicantRequest": {
            "type": "object",
            "properties": {
                "school_year": {"type": "string"},
                "school_term": {"type": "string"},
                "entry_level": {"type": "string"},
                "program_first_choice": {"type": "string"},
                "program_second_choice": {"type": "string"},
                "first_name": {"type": "string"},
                "middle_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "mobile_number": {"type": "string"},
                "birth_date": {"type": "string"},
                "gender": {"type": "string"},
                "civil_status": {"type": "string"},
                "religion": {"type": "string"},
                "current_city": {"type": "string"},
                "current_province": {"type": "string"}
            },
            "required": ["school_year", "school_term", "entry_level", "program_first_choice", "first_name", "last_name", "email", "mobile_number"]
        },
        "UpdateApplicantRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "email": {"type": "string"},
                "mobile_number": {"type": "string"},
                "program_first_choice": {"type": "string"},
                "program_second_choice": {"type": "string"},
                "rescore": {"type": "boolean"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "DashboardSummary": {
            "type": "object",
            "properties": {
                "totals": {"type": "object"},
                "by_program": {"type": "array", "items": {"$ref": "#/definitions/CountBucket"}},
                "by_entry_level": {"type": "array", "items": {"$ref": "#/definitions/CountBucket"}},
                "by_province": {"type": "array", "items": {"$ref": "#/definitions/CountBucket"}},
                "model_status": {"type": "object"}
            }
        },
        "CountBucket": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "count": {"type": "integer"},
                "enrolled": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
