// Package docs holds the OpenAPI document served under /swagger/.
// It follows the swag annotations in internal/handler and internal/api;
// `go generate ./internal/api` rebuilds it with swag.
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
        "/wallet/account": {
            "get": {
                "description": "Returns the custodial account address (created on first use), network and an address QR code",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Get managed account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AccountResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/balance": {
            "get": {
                "description": "Gets USDC and ETH balance of the managed account with an ETH/USD estimate",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Get wallet balance (USD = ETH * rate)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.BalanceResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/check": {
            "post": {
                "description": "Runs every transfer check against fresh balances and returns the call payload without submitting it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Dry-run a transfer",
                "parameters": [
                    {"type": "string", "description": "ETH or USDC (default USDC)", "name": "asset", "in": "query"},
                    {"description": "Payment data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.PayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CheckResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/pay/native": {
            "post": {
                "description": "Validates and submits a native ETH transfer",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Send ETH",
                "parameters": [
                    {"description": "Payment data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.PayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.PayResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/pay/token": {
            "post": {
                "description": "Validates and submits a USDC transfer; the amount must be within the configured range",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Send USDC",
                "parameters": [
                    {"description": "Payment data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.PayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.PayResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/transactions": {
            "get": {
                "description": "Gets the agent's submitted and failed transfers with filtering capability (USDC and ETH)",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Get journaled transfers",
                "parameters": [
                    {"type": "string", "description": "Status: submitted or failed", "name": "status", "in": "query"},
                    {"type": "string", "description": "Transaction ID", "name": "txId", "in": "query"},
                    {"type": "string", "description": "Start date (YYYY-MM-DD)", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date (YYYY-MM-DD)", "name": "to", "in": "query"},
                    {"type": "string", "description": "Filter by asset: USDC or ETH", "name": "asset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LogResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.AccountResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "kind": {"type": "string"},
                "network": {"type": "string"},
                "chainId": {"type": "integer"},
                "provider": {"type": "string"},
                "QR": {"type": "string"}
            }
        },
        "model.BalanceResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "network": {"type": "string"},
                "usdc": {"type": "string"},
                "eth": {"type": "string"},
                "eth_usd_rate": {"type": "string"},
                "eth_amount_in_usd": {"type": "string"}
            }
        },
        "model.CheckResponse": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "to": {"type": "string"},
                "asset": {"type": "string"},
                "amount": {"type": "string"},
                "rawAmount": {"type": "string"},
                "balance": {"type": "string"},
                "target": {"type": "string"},
                "data": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "model.LogResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "agent": {"type": "string"},
                "total_sent_ETH": {"type": "string"},
                "total_sent_USDC": {"type": "string"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/model.Transaction"}}
            }
        },
        "model.PayRequest": {
            "type": "object",
            "properties": {
                "toAddress": {"type": "string"},
                "amount": {"type": "string"}
            }
        },
        "model.PayResponse": {
            "type": "object",
            "properties": {
                "txId": {"type": "string"},
                "explorerUrl": {"type": "string"}
            }
        },
        "model.Transaction": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "agent": {"type": "string"},
                "txId": {"type": "string"},
                "from": {"type": "string"},
                "to": {"type": "string"},
                "asset": {"type": "string"},
                "amount": {"type": "string"},
                "rawAmount": {"type": "string"},
                "network": {"type": "string"},
                "status": {"type": "string"},
                "error": {"type": "string"},
                "explorerUrl": {"type": "string"},
                "timestamp": {"type": "string"}
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
	Title:            "CDP Wallet API",
	Description:      "Custodial USDC/ETH wallet on Base backed by Coinbase Developer Platform server accounts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
