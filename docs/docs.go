package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "CarwashDash API Documentation",
        "title": "CarwashDash API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User Login",
                "description": "Login with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Login credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {
                                    "type": "string",
                                    "example": "admin@carwashdash.nl"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "admin123"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/collections/{collection}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List a task collection",
                "description": "Lists the tasks or weekly_agenda collection, optionally narrowed to one stored date",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "path",
                        "name": "collection",
                        "type": "string",
                        "enum": ["tasks", "weekly_agenda"],
                        "required": true
                    },
                    {
                        "in": "query",
                        "name": "date",
                        "type": "string",
                        "description": "Stored date (YYYY-MM-DD)"
                    }
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "Task list"
                    }
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create a task",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "path",
                        "name": "collection",
                        "type": "string",
                        "enum": ["tasks", "weekly_agenda"],
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "task",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "text": {"type": "string", "example": "Borstels spoelen"},
                                "notes": {"type": "string"},
                                "date": {"type": "string", "example": "2025-06-02"},
                                "time_block": {"type": "string", "enum": ["ochtend", "middag", "avond"]},
                                "repeat": {"type": "string", "enum": ["once", "daily", "weekly", "monthly", "yearly"]}
                            }
                        }
                    }
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {
                        "description": "Task created"
                    }
                }
            }
        },
        "/board/today": {
            "get": {
                "tags": ["Board"],
                "summary": "Today's board",
                "description": "Today's day tasks merged with the recurring board tasks due today, grouped into time blocks",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "Block-grouped board"
                    }
                }
            }
        },
        "/board/week": {
            "get": {
                "tags": ["Board"],
                "summary": "Week board",
                "description": "The recurring board expanded over the coming days, merged with stored day tasks, keyed by date",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "days",
                        "type": "integer",
                        "default": 7
                    }
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "Date-keyed board"
                    }
                }
            }
        },
        "/agenda/export.ics": {
            "get": {
                "tags": ["Agenda"],
                "summary": "Export agenda as iCalendar",
                "produces": ["text/calendar"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "iCalendar document"
                    }
                }
            }
        },
        "/orders": {
            "get": {
                "tags": ["Orders"],
                "summary": "List orders",
                "description": "Orders newest first; archived orders hidden unless include_archived=true",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "include_archived",
                        "type": "boolean"
                    },
                    {
                        "in": "query",
                        "name": "type",
                        "type": "string",
                        "enum": ["kleding", "onderdelen", "producten", "overige"]
                    },
                    {
                        "in": "query",
                        "name": "done",
                        "type": "boolean"
                    }
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "Order list"
                    }
                }
            },
            "post": {
                "tags": ["Orders"],
                "summary": "Submit a supply order",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "order",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "type": {"type": "string", "enum": ["kleding", "onderdelen", "producten", "overige"]},
                                "text": {"type": "string", "example": "2x overall maat L"},
                                "target": {"type": "string", "example": "Jan"}
                            }
                        }
                    }
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {
                        "description": "Order created"
                    }
                }
            }
        },
        "/stream": {
            "get": {
                "tags": ["Stream"],
                "summary": "Subscribe to collection snapshots",
                "description": "Upgrades to a websocket and delivers full collection snapshots on every change",
                "parameters": [
                    {
                        "in": "query",
                        "name": "collections",
                        "type": "string",
                        "description": "Comma-separated collection names; absent means all"
                    }
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "101": {
                        "description": "Switching protocols"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "CarwashDash API",
	Description:      "CarwashDash API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
