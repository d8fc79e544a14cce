// Package docs registers the swagger spec for the @Summary/@Router
// annotations on pkg/server/rest's handlers (spec.md §4.13, C15). In a
// normal development cycle this file is produced by `swag init` reading
// those annotations; this one is written by hand in that generated
// shape, so planserver's httpSwagger.Handler has a spec to serve without
// a build-time codegen step.
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
        "/plan": {
            "post": {
                "summary": "single-shot weighted A* plan",
                "tags": ["planning"]
            }
        },
        "/replan": {
            "post": {
                "summary": "incremental LPA* replan of an existing run",
                "tags": ["planning"]
            }
        },
        "/runs/{id}": {
            "get": {
                "summary": "fetch a previously completed run's summary",
                "tags": ["planning"]
            }
        },
        "/runs/{id}.svg": {
            "get": {
                "summary": "render a previously completed run's search as SVG",
                "tags": ["planning"]
            }
        }
    }
}`

// SwaggerInfo holds exported swagger spec metadata, populated from the
// @title/@version/@host/@BasePath/@schemes annotations on cmd/planserver.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "motion-primitive-library planning demo API",
	Description:      "weighted A*/LPA* motion-primitive planner demo server",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
