// Package docs holds the swagger document served at /swagger/.
// It follows the swag output format; keep it in sync with the handler annotations.
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
        "/": {
            "get": {
                "description": "Always reports that the relay is up",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "paymesh"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "PAYMESH IS ACTIVE",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/pay_member": {
            "post": {
                "description": "Invokes pay(member) on the PayMesh contract. The body is a bare JSON string, not an object.\nEach call submits a new transaction; the endpoint is not idempotent.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "paymesh"
                ],
                "summary": "Pay a member",
                "parameters": [
                    {
                        "description": "Member address: 0x followed by 64 hex digits",
                        "name": "address",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "AMOUNT SPLIT SUCCESFULLY <tx hash>",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/model.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string",
                    "example": "INVALID ADDRESS"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PayMesh Relay API",
	Description:      "Relays pay requests to the PayMesh contract on Starknet.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
