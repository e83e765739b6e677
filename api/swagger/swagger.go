package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LMS HRIS API",
        "description": "Read-only reporting bridge between the learning platform and the HR system",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Reports", "description": "Aggregated course, enrollment and score reports"}
    ],
    "paths": {
        "/hris/courses": {
            "get": {
                "tags": ["Reports"],
                "summary": "List active courses",
                "parameters": [
                    {"name": "apikey", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid API key", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/hris/participants": {
            "get": {
                "tags": ["Reports"],
                "summary": "List course participants",
                "parameters": [
                    {"name": "apikey", "in": "query", "required": true, "type": "string"},
                    {"name": "courseid", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid API key", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/hris/results": {
            "get": {
                "tags": ["Reports"],
                "summary": "List course results with pre/post-test scores",
                "parameters": [
                    {"name": "apikey", "in": "query", "required": true, "type": "string"},
                    {"name": "courseid", "in": "query", "type": "integer"},
                    {"name": "userid", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid API key", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/hris/results/all": {
            "get": {
                "tags": ["Reports"],
                "summary": "List course results with questionnaire scores",
                "parameters": [
                    {"name": "apikey", "in": "query", "required": true, "type": "string"},
                    {"name": "courseid", "in": "query", "type": "integer"},
                    {"name": "company_name", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid API key", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/hris/results/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export aggregated results as CSV or PDF",
                "parameters": [
                    {"name": "apikey", "in": "query", "required": true, "type": "string"},
                    {"name": "courseid", "in": "query", "type": "integer"},
                    {"name": "company_name", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "401": {"description": "Invalid API key", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CourseRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "shortname": {"type": "string"},
                "fullname": {"type": "string"},
                "summary": {"type": "string"},
                "startdate": {"type": "integer"},
                "enddate": {"type": "integer"},
                "visible": {"type": "integer"}
            }
        },
        "ParticipantRecord": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "email": {"type": "string"},
                "firstname": {"type": "string"},
                "lastname": {"type": "string"},
                "company_name": {"type": "string"},
                "course_id": {"type": "integer"},
                "course_shortname": {"type": "string"},
                "course_name": {"type": "string"},
                "enrollment_date": {"type": "integer"}
            }
        },
        "CourseResultRecord": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "email": {"type": "string"},
                "firstname": {"type": "string"},
                "lastname": {"type": "string"},
                "company_name": {"type": "string"},
                "course_id": {"type": "integer"},
                "course_shortname": {"type": "string"},
                "course_name": {"type": "string"},
                "final_grade": {"type": "number"},
                "pretest_score": {"type": "number"},
                "posttest_score": {"type": "number"},
                "completion_date": {"type": "integer"},
                "is_completed": {"type": "integer"}
            }
        },
        "FullCourseResultRecord": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "email": {"type": "string"},
                "firstname": {"type": "string"},
                "lastname": {"type": "string"},
                "company_name": {"type": "string"},
                "course_id": {"type": "integer"},
                "course_shortname": {"type": "string"},
                "course_name": {"type": "string"},
                "final_grade": {"type": "number"},
                "pretest_score": {"type": "number"},
                "posttest_score": {"type": "number"},
                "completion_date": {"type": "integer"},
                "is_completed": {"type": "integer"},
                "questionnaire_available": {"type": "integer"},
                "score_materi": {"type": "number"},
                "score_trainer": {"type": "number"},
                "score_tempat": {"type": "number"},
                "score_total": {"type": "number"}
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
