package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Dropout Watch API",
        "description": "Student dropout-risk tracking backend: risk intake, interventions, peer-listener conversations and aggregate dashboards",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Opaque session token, sent as 'Bearer <token>'"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Session management"},
        {"name": "Students", "description": "Student intake and risk roster"},
        {"name": "Dashboard", "description": "Aggregate statistics and risk-factor analysis"},
        {"name": "Interventions", "description": "Intervention lifecycle for high-risk students"},
        {"name": "Conversations", "description": "Peer-listener conversations and messages"},
        {"name": "Notifications", "description": "Per-user notification inbox"},
        {"name": "Users", "description": "Admin account management"},
        {"name": "Reports", "description": "High-risk roster exports"},
        {"name": "Public", "description": "Contact form and keyword chat"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in with email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token and account", "schema": {"$ref": "#/definitions/LoginResult"}},
                    "401": {"description": "Unknown account or wrong password", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a self-service account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation failure or duplicate email", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/auth/check": {
            "get": {
                "tags": ["Auth"],
                "summary": "Validate the session token",
                "security": [{"BearerToken": []}],
                "responses": {
                    "200": {"description": "Token is valid"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the session token",
                "security": [{"BearerToken": []}],
                "responses": {
                    "200": {"description": "Logged out"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students, or fetch one by id",
                "security": [{"BearerToken": []}],
                "parameters": [
                    {"name": "id", "in": "query", "type": "integer"},
                    {"name": "high_risk", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Student"}}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register a student intake and derive the risk score",
                "security": [{"BearerToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update a student's intervention status",
                "security": [{"BearerToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Aggregate dashboard payload",
                "security": [{"BearerToken": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/dashboard/factors": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Risk-factor analysis payload",
                "security": [{"BearerToken": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/listeners": {
            "get": {
                "tags": ["Conversations"],
                "summary": "List available listeners",
                "security": [{"BearerToken": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/conversations": {
            "get": {
                "tags": ["Conversations"],
                "summary": "Fetch one conversation by id, or a user's conversations",
                "security": [{"BearerToken": []}],
                "parameters": [
                    {"name": "id", "in": "query", "type": "integer"},
                    {"name": "user_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Conversations"],
                "summary": "Open a conversation with a listener",
                "security": [{"BearerToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateConversationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Listener not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Conversations"],
                "summary": "Update a conversation's status",
                "security": [{"BearerToken": []}],
                "responses": {
                    "200": {"description": "Updated"}
                }
            }
        },
        "/messages": {
            "get": {
                "tags": ["Conversations"],
                "summary": "List a conversation's messages, oldest first",
                "security": [{"BearerToken": []}],
                "parameters": [
                    {"name": "conversation_id", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Conversations"],
                "summary": "Send a message; user messages schedule a generated reply",
                "security": [{"BearerToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PostMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Conversation not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/interventions": {
            "get": {
                "tags": ["Interventions"],
                "summary": "High-risk roster with interventions",
                "security": [{"BearerToken": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Interventions"],
                "summary": "Open an intervention for a student",
                "security": [{"BearerToken": []}],
                "responses": {
                    "201": {"description": "Created"}
                }
            },
            "put": {
                "tags": ["Interventions"],
                "summary": "Close or re-grade an intervention",
                "security": [{"BearerToken": []}],
                "responses": {
                    "200": {"description": "Updated"},
                    "404": {"description": "Intervention not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Latest notifications for a user",
                "security": [{"BearerToken": []}],
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Notifications"],
                "summary": "Create a notification, or mark one read via notification_id",
                "security": [{"BearerToken": []}],
                "responses": {
                    "200": {"description": "Marked read"},
                    "201": {"description": "Created"}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List accounts (admin)",
                "security": [{"BearerToken": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Admin access required"}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create an account (admin)",
                "security": [{"BearerToken": []}],
                "responses": {
                    "201": {"description": "Created"}
                }
            },
            "put": {
                "tags": ["Users"],
                "summary": "Update an account (admin)",
                "security": [{"BearerToken": []}],
                "responses": {
                    "200": {"description": "Updated"}
                }
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete an account (admin)",
                "security": [{"BearerToken": []}],
                "parameters": [
                    {"name": "id", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted"}
                }
            }
        },
        "/reports/high-risk": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download the high-risk roster (admin)",
                "security": [{"BearerToken": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/reports/high-risk/link": {
            "post": {
                "tags": ["Reports"],
                "summary": "Mint a time-limited download link (admin)",
                "security": [{"BearerToken": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "201": {"description": "Token and expiry"},
                    "503": {"description": "Link signing not configured"}
                }
            }
        },
        "/reports/download": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a report with a signed token",
                "parameters": [
                    {"name": "token", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        },
        "/contact": {
            "post": {
                "tags": ["Public"],
                "summary": "Submit the contact form",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/chat": {
            "post": {
                "tags": ["Public"],
                "summary": "Keyword chat bot",
                "responses": {
                    "200": {"description": "Reply"},
                    "400": {"description": "Message is required"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "LoginResult": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/UserInfo"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8}
            },
            "required": ["name", "email", "password"]
        },
        "UserInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "user", "listener"]},
                "status": {"type": "string", "enum": ["Active", "Inactive"]}
            }
        },
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "age": {"type": "integer"},
                "gender": {"type": "string", "enum": ["Male", "Female"]},
                "academic_performance": {"type": "number"},
                "attendance": {"type": "number"},
                "socio_economic_status": {"type": "integer"},
                "family_support": {"type": "integer"},
                "dropout_risk": {"type": "number"},
                "intervention_status": {"type": "string", "enum": ["Pending", "In Progress", "Completed"]}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "age": {"type": "integer"},
                "gender": {"type": "string", "enum": ["Male", "Female"]},
                "school_name": {"type": "string"},
                "location_type": {"type": "string"},
                "academic_performance": {"type": "number", "minimum": 0, "maximum": 100},
                "attendance": {"type": "number", "minimum": 0, "maximum": 100},
                "socio_economic_status": {"type": "integer", "minimum": 1, "maximum": 5},
                "family_support": {"type": "integer", "minimum": 1, "maximum": 5}
            },
            "required": ["name", "age", "gender"]
        },
        "UpdateStudentStatusRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "intervention_status": {"type": "string", "enum": ["Pending", "In Progress", "Completed"]}
            },
            "required": ["id", "intervention_status"]
        },
        "CreateConversationRequest": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "listener_id": {"type": "integer"},
                "problem": {"type": "string"}
            },
            "required": ["user_id", "listener_id", "problem"]
        },
        "PostMessageRequest": {
            "type": "object",
            "properties": {
                "conversation_id": {"type": "integer"},
                "sender_id": {"type": "integer"},
                "message": {"type": "string"}
            },
            "required": ["conversation_id", "sender_id", "message"]
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "object"}
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
