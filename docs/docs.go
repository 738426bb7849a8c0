// Package docs holds the OpenAPI document served under /swagger. It follows
// the layout produced by swag init and is kept in sync with the handler
// annotations.
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
		"/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register a new user",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.registerRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "created",
						"schema": {
							"$ref": "#/definitions/handler.sessionResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"409": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Login",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/handler.sessionResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/check-token": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Renew the session token",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/handler.sessionResponse"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/check-credentials/{id}": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Re-check credentials of an account",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loginRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/handler.userResponse"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/check-email-exist/{email}": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Check whether an email is taken",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "email",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/handler.emailExistsResponse"
						}
					}
				}
			}
		},
		"/users": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "List users",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "query",
						"name": "page",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/handler.userPageResponse"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"users"
				],
				"summary": "Create a user",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createUserRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"201": {
						"description": "created",
						"schema": {
							"$ref": "#/definitions/handler.userResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"409": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/users/search/{term}": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Search users by name, email, role or country",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "term",
						"required": true,
						"type": "string"
					},
					{
						"in": "query",
						"name": "page",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/handler.userPageResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/users/{id}": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Get a user",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/handler.userResponse"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"patch": {
				"tags": [
					"users"
				],
				"summary": "Update a user profile",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateUserRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/handler.userResponse"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"409": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"users"
				],
				"summary": "Delete a user",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/handler.userResponse"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/users/{id}/password": {
			"patch": {
				"tags": [
					"users"
				],
				"summary": "Change a password",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updatePasswordRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/handler.userResponse"
						}
					}
				}
			}
		},
		"/users/{id}/avatar": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "Upload an avatar",
				"produces": [
					"application/json"
				],
				"consumes": [
					"multipart/form-data"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					},
					{
						"in": "formData",
						"name": "avatar",
						"required": true,
						"type": "file"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/handler.avatarResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/users/profile-image/{name}": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Serve a profile image",
				"produces": [
					"image/png"
				],
				"parameters": [
					{
						"in": "path",
						"name": "name",
						"required": true,
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "image"
					}
				}
			}
		}
	},
	"definitions": {
		"domain.Country": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"cca2": {
					"type": "string"
				}
			}
		},
		"domain.User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"user",
						"admin",
						"super_admin"
					]
				},
				"country": {
					"$ref": "#/definitions/domain.Country"
				},
				"avatar": {
					"type": "string"
				},
				"is_active": {
					"type": "boolean"
				},
				"last_login": {
					"type": "string",
					"format": "date-time"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.NavItem": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"url": {
					"type": "string"
				},
				"title": {
					"type": "boolean"
				},
				"iconComponent": {
					"type": "object",
					"properties": {
						"name": {
							"type": "string"
						}
					}
				},
				"badge": {
					"type": "object",
					"properties": {
						"color": {
							"type": "string"
						},
						"text": {
							"type": "string"
						}
					}
				},
				"children": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.NavItem"
					}
				}
			}
		},
		"handler.errorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"kind": {
					"type": "string"
				}
			}
		},
		"handler.registerRequest": {
			"type": "object",
			"required": [
				"email",
				"name",
				"password"
			],
			"properties": {
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"password": {
					"type": "string",
					"minLength": 6,
					"maxLength": 72
				}
			}
		},
		"handler.loginRequest": {
			"type": "object",
			"required": [
				"email",
				"password"
			],
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"handler.countryRequest": {
			"type": "object",
			"required": [
				"name",
				"cca2"
			],
			"properties": {
				"name": {
					"type": "string"
				},
				"cca2": {
					"type": "string"
				}
			}
		},
		"handler.createUserRequest": {
			"type": "object",
			"required": [
				"email",
				"name",
				"password",
				"country"
			],
			"properties": {
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"password": {
					"type": "string",
					"minLength": 6,
					"maxLength": 72
				},
				"role": {
					"type": "string",
					"enum": [
						"user",
						"admin",
						"super_admin"
					]
				},
				"country": {
					"$ref": "#/definitions/handler.countryRequest"
				},
				"avatar": {
					"type": "string"
				},
				"is_active": {
					"type": "boolean"
				}
			}
		},
		"handler.updateUserRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"user",
						"admin",
						"super_admin"
					]
				},
				"country": {
					"$ref": "#/definitions/handler.countryRequest"
				},
				"avatar": {
					"type": "string"
				},
				"is_active": {
					"type": "boolean"
				}
			}
		},
		"handler.updatePasswordRequest": {
			"type": "object",
			"required": [
				"password"
			],
			"properties": {
				"password": {
					"type": "string",
					"minLength": 6,
					"maxLength": 72
				}
			}
		},
		"handler.sessionResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"expires_in": {
					"description": "ExpiresIn is the token lifetime in seconds.",
					"type": "integer"
				},
				"user": {
					"$ref": "#/definitions/domain.User"
				},
				"menu": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.NavItem"
					}
				}
			}
		},
		"handler.userResponse": {
			"type": "object",
			"properties": {
				"user": {
					"$ref": "#/definitions/domain.User"
				}
			}
		},
		"handler.userPageResponse": {
			"type": "object",
			"properties": {
				"page": {
					"type": "integer"
				},
				"per_page": {
					"type": "integer"
				},
				"total": {
					"type": "integer"
				},
				"page_total": {
					"type": "integer"
				},
				"users": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.User"
					}
				}
			}
		},
		"handler.emailExistsResponse": {
			"type": "object",
			"properties": {
				"exists": {
					"type": "boolean"
				}
			}
		},
		"handler.avatarResponse": {
			"type": "object",
			"properties": {
				"file_name": {
					"type": "string"
				},
				"ok": {
					"type": "boolean"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and the JWT.",
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
	Title:            "User Service API",
	Description:      "Account registration, login and role-based user administration.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
