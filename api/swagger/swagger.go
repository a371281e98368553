package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Maestre API",
        "description": "Classroom management and AI teaching tools",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Teacher accounts and sessions"},
        {"name": "Classrooms", "description": "Classroom management"},
        {"name": "Materials", "description": "Teaching materials and text extraction"},
        {"name": "Tags", "description": "Material tags"},
        {"name": "Terms", "description": "Terms and conditions documents"},
        {"name": "Tools", "description": "AI generation tools"}
    ],
    "paths": {
        "/users/signup": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a teacher account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email or username taken"}
                }
            }
        },
        "/users/signin": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate by email or username",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SigninRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/users/signout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Sign out and discard the token",
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/users/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user profile",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Authentication"],
                "summary": "Update current user profile",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Authentication"],
                "summary": "Deactivate current account",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/users/check-role": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Check current user's role",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classrooms": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List classrooms",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "academic_year", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Classrooms"],
                "summary": "Create classroom",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classrooms/{id}": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Get classroom",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Classrooms"],
                "summary": "Update classroom",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Classrooms"],
                "summary": "Delete classroom",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}
            }
        },
        "/materials": {
            "get": {
                "tags": ["Materials"],
                "summary": "List materials",
                "parameters": [
                    {"name": "classroom", "in": "query", "type": "string"},
                    {"name": "tags", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Materials"],
                "summary": "Upload material",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "name", "in": "formData", "required": true, "type": "string"},
                    {"name": "classroom", "in": "formData", "required": true, "type": "string"},
                    {"name": "tags", "in": "formData", "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Classroom file limit reached"}
                }
            }
        },
        "/materials/{id}": {
            "get": {
                "tags": ["Materials"],
                "summary": "Get material",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Materials"],
                "summary": "Rename material or replace tags",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Materials"],
                "summary": "Delete material",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}
            }
        },
        "/materials/{id}/download": {
            "get": {
                "tags": ["Materials"],
                "summary": "Download stored material file",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "produces": ["application/octet-stream"],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/materials/extract-text": {
            "post": {
                "tags": ["Materials"],
                "summary": "Extract plain text from an uploaded document",
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "file", "in": "formData", "required": true, "type": "file"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unsupported file"}}
            }
        },
        "/materials/extract-text-from-url": {
            "post": {
                "tags": ["Materials"],
                "summary": "Extract plain text from a document at a URL",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unsupported file"}}
            }
        },
        "/tags": {
            "get": {
                "tags": ["Tags"],
                "summary": "List tags",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Tags"],
                "summary": "Create tag",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Name taken"}}
            }
        },
        "/tags/{id}": {
            "put": {
                "tags": ["Tags"],
                "summary": "Update tag",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Tags"],
                "summary": "Delete tag",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}
            }
        },
        "/terms": {
            "post": {
                "tags": ["Terms"],
                "summary": "Publish a terms document version",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Version exists"}}
            }
        },
        "/terms/{id}": {
            "delete": {
                "tags": ["Terms"],
                "summary": "Delete a terms document version",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}
            }
        },
        "/terms/{tag}": {
            "get": {
                "tags": ["Terms"],
                "summary": "Latest terms document for a tag",
                "parameters": [{"name": "tag", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/terms/{tag}/versions": {
            "get": {
                "tags": ["Terms"],
                "summary": "List terms document versions",
                "parameters": [{"name": "tag", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/terms/{tag}/versions/{version}/pdf": {
            "get": {
                "tags": ["Terms"],
                "summary": "Download a terms version as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "tag", "in": "path", "required": true, "type": "string"},
                    {"name": "version", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/tools/exams": {
            "post": {
                "tags": ["Tools"],
                "summary": "Generate an exam",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateExamRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Generation already in progress"}
                }
            }
        },
        "/tools/lesson-plans": {
            "post": {
                "tags": ["Tools"],
                "summary": "Generate a lesson plan",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Generation already in progress"}
                }
            }
        },
        "/tools/artifacts/export": {
            "post": {
                "tags": ["Tools"],
                "summary": "Export generated content as a document",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tools/artifacts/save": {
            "post": {
                "tags": ["Tools"],
                "summary": "Save generated content as a classroom material",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/tools/artifacts/{token}": {
            "get": {
                "tags": ["Tools"],
                "summary": "Download an exported artifact by signed token",
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "produces": ["application/octet-stream"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid or expired token"}}
            }
        },
        "/tools/translate": {
            "post": {
                "tags": ["Tools"],
                "summary": "Translate text",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tools/translate/history": {
            "get": {
                "tags": ["Tools"],
                "summary": "Recent translations for the current user",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "SignupRequest": {
            "type": "object",
            "required": ["email", "username", "password", "first_name"],
            "properties": {
                "email": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "region": {"type": "string"},
                "city": {"type": "string"}
            }
        },
        "SigninRequest": {
            "type": "object",
            "required": ["identifier", "password"],
            "properties": {
                "identifier": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "GenerateExamRequest": {
            "type": "object",
            "required": ["subject", "num_questions", "question_type", "total_points", "classroom"],
            "properties": {
                "subject": {"type": "string"},
                "exam_name": {"type": "string"},
                "num_questions": {"type": "integer"},
                "question_type": {"type": "string"},
                "total_points": {"type": "integer"},
                "scoring_mode": {"type": "string"},
                "custom_scoring_details": {"type": "string"},
                "additional_instructions": {"type": "string"},
                "classroom": {"type": "string"},
                "material_id": {"type": "string"},
                "reference_text": {"type": "string"},
                "model": {"type": "string"}
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
