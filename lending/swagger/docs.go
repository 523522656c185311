// Package swagger serves the OpenAPI document of the lending API.
// It mirrors the godoc annotations on the handlers; regenerate it with
// go generate ./cmd/lending after changing a route.
package swagger

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
        "/api/v1/admin/books": {
            "post": {
                "description": "Adds a title to the catalog with every copy available.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "books"
                ],
                "summary": "Create a book",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "Book to create",
                        "name": "book",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.CreateBookRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created book",
                        "schema": {
                            "$ref": "#/definitions/model.Book"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            },
            "get": {
                "description": "Returns the catalog with current availability.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "books"
                ],
                "summary": "List books",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin",
                            "student"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Books",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.Book"
                            }
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/books/{id}": {
            "get": {
                "description": "Returns one book by id.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "books"
                ],
                "summary": "Get a book",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Book ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Book",
                        "schema": {
                            "$ref": "#/definitions/model.Book"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            },
            "put": {
                "description": "Replaces title, author and genre and resizes the inventory to totalCopies.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "books"
                ],
                "summary": "Update a book",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Book ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New book fields",
                        "name": "book",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.UpdateBookRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated book",
                        "schema": {
                            "$ref": "#/definitions/model.Book"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            },
            "delete": {
                "description": "Removes a book that has no outstanding loans or pending requests.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "books"
                ],
                "summary": "Delete a book",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Book ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "409": {
                        "description": "Book has outstanding loans or requests",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/books/{id}/copies": {
            "put": {
                "description": "Sets the total number of copies; available copies shift by the same delta, clamped to [0, totalCopies].",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "books"
                ],
                "summary": "Resize inventory",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Book ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New total",
                        "name": "copies",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ResizeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Resized book",
                        "schema": {
                            "$ref": "#/definitions/model.Book"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/dashboard": {
            "get": {
                "description": "Returns catalog, loan and request counters.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Library statistics",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Statistics",
                        "schema": {
                            "$ref": "#/definitions/model.Stats"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/loans": {
            "get": {
                "description": "Returns loans, optionally filtered by student, book and status.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "loans"
                ],
                "summary": "List loans",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Student ID",
                        "name": "studentId",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Book ID",
                        "name": "bookId",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "issued",
                            "returned"
                        ],
                        "type": "string",
                        "description": "Loan status",
                        "name": "status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Loans",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.Loan"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            },
            "post": {
                "description": "Lends a copy directly to a student, bypassing the request queue.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "loans"
                ],
                "summary": "Issue a loan",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "Loan to issue",
                        "name": "loan",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.IssueRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Issued loan",
                        "schema": {
                            "$ref": "#/definitions/model.Loan"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "409": {
                        "description": "No available copies",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/loans/{id}/return": {
            "post": {
                "description": "Marks the loan returned and puts the copy back on the shelf.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "loans"
                ],
                "summary": "Return a loan",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Loan ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Returned loan",
                        "schema": {
                            "$ref": "#/definitions/model.Loan"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "409": {
                        "description": "Loan already returned",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/requests": {
            "get": {
                "description": "Returns borrow requests, optionally filtered by status.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "requests"
                ],
                "summary": "List borrow requests",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "pending",
                            "approved",
                            "rejected"
                        ],
                        "type": "string",
                        "description": "Request status",
                        "name": "status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Requests",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.BorrowRequest"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/requests/{id}/approve": {
            "post": {
                "description": "Issues a loan for a pending request. The request stays pending when no copy is available.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "requests"
                ],
                "summary": "Approve a borrow request",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Request ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Approved request and issued loan",
                        "schema": {
                            "$ref": "#/definitions/model.Approval"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "409": {
                        "description": "Request is not pending or book is out of stock",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/requests/{id}/reject": {
            "post": {
                "description": "Rejects a pending request.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "requests"
                ],
                "summary": "Reject a borrow request",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Request ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Rejected request",
                        "schema": {
                            "$ref": "#/definitions/model.BorrowRequest"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "409": {
                        "description": "Request is not pending",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/student/books": {
            "get": {
                "description": "Returns the catalog with current availability.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "books"
                ],
                "summary": "List books",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "admin",
                            "student"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Books",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.Book"
                            }
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/student/loans": {
            "get": {
                "description": "Returns the calling student's loans.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "student"
                ],
                "summary": "My loans",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "student"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Loans",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.Loan"
                            }
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/student/overview": {
            "get": {
                "description": "Returns current and past loans and pending requests of the calling student.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "student"
                ],
                "summary": "My overview",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "student"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Overview",
                        "schema": {
                            "$ref": "#/definitions/model.StudentOverview"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/v1/student/requests": {
            "post": {
                "description": "Queues a request to borrow a book for the calling student.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "student"
                ],
                "summary": "Submit a borrow request",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "student"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "Book to borrow",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.SubmitRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Pending request",
                        "schema": {
                            "$ref": "#/definitions/model.BorrowRequest"
                        }
                    },
                    "400": {
                        "description": "Bad request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            },
            "get": {
                "description": "Returns the calling student's requests.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "student"
                ],
                "summary": "My borrow requests",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Caller id",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "enum": [
                            "student"
                        ],
                        "type": "string",
                        "description": "Caller role",
                        "name": "X-User-Role",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Requests",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.BorrowRequest"
                            }
                        }
                    },
                    "401": {
                        "description": "Missing or invalid identity headers",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Caller has the wrong role",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/manage/health": {
            "get": {
                "description": "Liveness of the service.",
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "manage"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "echo.HTTPError": {
            "type": "object",
            "properties": {
                "message": {}
            }
        },
        "model.Approval": {
            "type": "object",
            "properties": {
                "loan": {
                    "$ref": "#/definitions/model.Loan"
                },
                "request": {
                    "$ref": "#/definitions/model.BorrowRequest"
                }
            }
        },
        "model.Book": {
            "type": "object",
            "properties": {
                "author": {
                    "type": "string"
                },
                "availableCopies": {
                    "type": "integer"
                },
                "genre": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                },
                "totalCopies": {
                    "type": "integer"
                }
            }
        },
        "model.BorrowRequest": {
            "type": "object",
            "properties": {
                "bookId": {
                    "type": "integer"
                },
                "bookTitle": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "requestedAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "status": {
                    "$ref": "#/definitions/model.RequestStatus"
                },
                "studentId": {
                    "type": "integer"
                }
            }
        },
        "model.CreateBookRequest": {
            "type": "object",
            "required": [
                "author",
                "title"
            ],
            "properties": {
                "author": {
                    "type": "string"
                },
                "genre": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "totalCopies": {
                    "type": "integer",
                    "minimum": 0
                }
            }
        },
        "model.IssueRequest": {
            "type": "object",
            "required": [
                "bookId",
                "studentId"
            ],
            "properties": {
                "bookId": {
                    "type": "integer"
                },
                "dueDate": {
                    "type": "string",
                    "format": "date",
                    "example": "2024-09-01"
                },
                "studentId": {
                    "type": "integer"
                }
            }
        },
        "model.Loan": {
            "type": "object",
            "properties": {
                "bookId": {
                    "type": "integer"
                },
                "bookTitle": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "issuedAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "overdue": {
                    "type": "boolean"
                },
                "returnDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "returnedAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "status": {
                    "$ref": "#/definitions/model.LoanStatus"
                },
                "studentId": {
                    "type": "integer"
                }
            }
        },
        "model.LoanStatus": {
            "type": "string",
            "enum": [
                "issued",
                "returned"
            ],
            "x-enum-varnames": [
                "LoanStatusIssued",
                "LoanStatusReturned"
            ]
        },
        "model.RequestStatus": {
            "type": "string",
            "enum": [
                "pending",
                "approved",
                "rejected"
            ],
            "x-enum-varnames": [
                "RequestStatusPending",
                "RequestStatusApproved",
                "RequestStatusRejected"
            ]
        },
        "model.ResizeRequest": {
            "type": "object",
            "properties": {
                "totalCopies": {
                    "type": "integer",
                    "minimum": 0
                }
            }
        },
        "model.Stats": {
            "type": "object",
            "properties": {
                "booksLoaned": {
                    "type": "integer"
                },
                "booksReturned": {
                    "type": "integer"
                },
                "overdueBooks": {
                    "type": "integer"
                },
                "pendingRequests": {
                    "type": "integer"
                },
                "students": {
                    "type": "integer"
                },
                "totalBooks": {
                    "type": "integer"
                },
                "totalCopies": {
                    "type": "integer"
                }
            }
        },
        "model.StudentOverview": {
            "type": "object",
            "properties": {
                "borrowed": {
                    "type": "integer"
                },
                "currentLoans": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.Loan"
                    }
                },
                "pastLoans": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.Loan"
                    }
                },
                "pendingRequests": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.BorrowRequest"
                    }
                }
            }
        },
        "model.SubmitRequest": {
            "type": "object",
            "required": [
                "bookId"
            ],
            "properties": {
                "bookId": {
                    "type": "integer"
                }
            }
        },
        "model.UpdateBookRequest": {
            "type": "object",
            "required": [
                "author",
                "title"
            ],
            "properties": {
                "author": {
                    "type": "string"
                },
                "genre": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "totalCopies": {
                    "type": "integer",
                    "minimum": 0
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Lending service API",
	Description:      "Library inventory, loans and borrow requests.\nIdentity comes from the X-User-Id and X-User-Role headers set by the gateway.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
