package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Nasma Insights API",
        "description": "Usage analytics and reconciliation reports for the Nasma assistant",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Analytics", "description": "Request and activity reports from action metrics"},
        {"name": "Messages", "description": "Usage reports derived from the chat history"},
        {"name": "Adoption", "description": "Assistant adoption against the employee roster"},
        {"name": "Coverage", "description": "Planned vs logged work reconciled from the ERP"},
        {"name": "Settings", "description": "Manually curated dashboard documents"},
        {"name": "Exports", "description": "Downloadable report files"}
    ],
    "paths": {
        "/requests": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Request counts by type",
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/success-rates": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Approval rates per request family",
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/activities-today": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Per-user activity counts, defaulting to the current UTC day",
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/request-durations": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Average request duration per family",
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/active-users": {
            "get": {
                "tags": ["Messages"],
                "summary": "Distinct message authors per month",
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/messages": {
            "get": {
                "tags": ["Messages"],
                "summary": "Message volume summary with per-user breakdown",
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/log-hours": {
            "get": {
                "tags": ["Messages"],
                "summary": "Users who asked to log hours",
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/adoption": {
            "get": {
                "tags": ["Adoption"],
                "summary": "Distinct users holding a session token",
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/adoption-by-department": {
            "get": {
                "tags": ["Adoption"],
                "summary": "Adoption rate per department",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning-coverage": {
            "get": {
                "tags": ["Coverage"],
                "summary": "Planned vs logged timesheet coverage",
                "parameters": [
                    {"name": "start_date", "in": "query", "required": true, "type": "string"},
                    {"name": "end_date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing or invalid window", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "ERP unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/monthly-hours": {
            "get": {
                "tags": ["Coverage"],
                "summary": "Total logged hours per month, excluding time off",
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "ERP unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/satisfaction": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get satisfaction document",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Settings"],
                "summary": "Replace satisfaction document",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SatisfactionDocument"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ease-comparison": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get ease-of-use comparison document",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Settings"],
                "summary": "Replace ease-of-use comparison document",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EaseComparisonDocument"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/messages.csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Message breakdown as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/export/adoption.pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "Adoption by department as PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        }
    },
    "definitions": {
        "RequestCount": {
            "type": "object",
            "properties": {
                "attribute": {"type": "string"},
                "value": {"type": "integer"}
            }
        },
        "SuccessRate": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "success_rate": {"type": "number"}
            }
        },
        "DepartmentAdoption": {
            "type": "object",
            "properties": {
                "department": {"type": "string"},
                "active_users": {"type": "integer"},
                "total_employees": {"type": "integer"},
                "adoption_rate_percent": {"type": "number"}
            }
        },
        "SatisfactionDocument": {
            "type": "object",
            "properties": {
                "overall_satisfaction": {"type": "string"}
            },
            "required": ["overall_satisfaction"]
        },
        "EaseComparisonDocument": {
            "type": "object",
            "properties": {
                "odoo": {"type": "array", "items": {"$ref": "#/definitions/EasePoint"}},
                "nasma": {"type": "array", "items": {"$ref": "#/definitions/EasePoint"}}
            },
            "required": ["odoo", "nasma"]
        },
        "EasePoint": {
            "type": "object",
            "properties": {
                "period": {"type": "string"},
                "value": {"type": "number"}
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
