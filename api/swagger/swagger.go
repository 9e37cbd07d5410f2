package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Library Duty API",
        "description": "Weekly library duty rosters for the student library committee",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Duty", "description": "Duty schedule generation and inspection"},
        {"name": "Ops", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Ops"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Ops"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/duty-schedules/generate": {
            "post": {
                "tags": ["Duty"],
                "summary": "Generate the duty schedule of a term",
                "description": "Refuses with 409 when the term already has a schedule and forceRegenerate is false.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateDutyScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Committed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid term", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Schedule exists", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Empty roster or no capacity", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Persistence failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/duty-schedules/{term}": {
            "get": {
                "tags": ["Duty"],
                "summary": "Get the persisted duty schedule of a term",
                "parameters": [
                    {"name": "term", "in": "path", "required": true, "type": "string", "enum": ["FIRST_TERM", "SECOND_TERM"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid term", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/duty-schedules/{term}/audit": {
            "get": {
                "tags": ["Duty"],
                "summary": "Re-check a persisted schedule against the roster",
                "parameters": [
                    {"name": "term", "in": "path", "required": true, "type": "string", "enum": ["FIRST_TERM", "SECOND_TERM"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateDutyScheduleRequest": {
            "type": "object",
            "required": ["term"],
            "properties": {
                "term": {"type": "string", "enum": ["FIRST_TERM", "SECOND_TERM"]},
                "forceRegenerate": {"type": "boolean"}
            }
        },
        "Assignment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "student_id": {"type": "string"},
                "room_id": {"type": "string"},
                "day_of_week": {"type": "integer", "minimum": 1, "maximum": 5},
                "term": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "DutyScheduleStats": {
            "type": "object",
            "properties": {
                "totalAssignments": {"type": "integer"},
                "studentsAssigned": {"type": "integer"},
                "averageAssignmentsPerStudent": {"type": "number"},
                "assignmentsByDay": {"type": "object", "additionalProperties": {"type": "integer"}},
                "assignmentsByRoom": {"type": "object", "additionalProperties": {"type": "integer"}},
                "balanceScore": {"type": "number", "minimum": 0, "maximum": 1}
            }
        },
        "GenerateDutyScheduleResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "term": {"type": "string"},
                "assignments": {"type": "array", "items": {"$ref": "#/definitions/Assignment"}},
                "stats": {"$ref": "#/definitions/DutyScheduleStats"},
                "unfilledSlots": {"type": "integer"},
                "replaced": {"type": "integer"},
                "error": {"type": "string"},
                "code": {"type": "string"}
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
