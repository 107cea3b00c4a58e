// Package swagger registers the OpenAPI document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/api/main.go -o docs/swagger
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/session": {
            "get": {"tags": ["session"], "summary": "Current user profile", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "post": {"tags": ["session"], "summary": "Store the backend token and profile in a server-side session", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}},
            "delete": {"tags": ["session"], "summary": "Log out", "responses": {"204": {"description": "No Content"}}}
        },
        "/events/{eventId}/roadmap": {
            "get": {"tags": ["roadmap"], "summary": "Roadmap overview", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "422": {"description": "Unprocessable Entity"}, "502": {"description": "Bad Gateway"}}},
            "post": {"tags": ["roadmap"], "summary": "Create a roadmap item", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}, "502": {"description": "Bad Gateway"}}}
        },
        "/events/{eventId}/roadmap/activity": {
            "get": {"tags": ["roadmap"], "summary": "Roadmap activity feed", "responses": {"200": {"description": "OK"}}}
        },
        "/events/{eventId}/roadmap/{id}": {
            "get": {"tags": ["roadmap"], "summary": "Get a roadmap item", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["roadmap"], "summary": "Update a roadmap item", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}},
            "delete": {"tags": ["roadmap"], "summary": "Delete a roadmap item", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/events/{eventId}/roadmap/{id}/status": {
            "patch": {"tags": ["roadmap"], "summary": "Change a roadmap item status", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/locations": {
            "get": {"tags": ["locations"], "summary": "Location suggestions", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Event Planner API",
	Description:      "Roadmap tracking and location suggestions for marketplace events.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
