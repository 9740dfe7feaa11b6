// Package docs registers the OpenAPI document served under /swagger.
package docs

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
        "/sponsorships/video": {
            "post": {
                "description": "Finds the sponsored segments of a YouTube video, transcribes them and summarizes each advertisement",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sponsorships"],
                "summary": "Analyze video",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/sponsorship.AnalyzeVideoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sponsorship.VideoReportResponse"}},
                    "400": {"description": "Invalid video URL"},
                    "502": {"description": "Upstream service failed"}
                }
            }
        },
        "/sponsorships/channel": {
            "post": {
                "description": "Analyzes the most recent uploads of a channel, newest first",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sponsorships"],
                "summary": "Analyze channel",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/sponsorship.AnalyzeChannelRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sponsorship.ChannelReportResponse"}},
                    "400": {"description": "Invalid handle or count"},
                    "404": {"description": "Channel not found"},
                    "502": {"description": "Upstream service failed"}
                }
            }
        },
        "/sponsorships/reports/{videoId}": {
            "get": {
                "description": "Returns the last stored report of a video without analyzing it again",
                "produces": ["application/json"],
                "tags": ["Sponsorships"],
                "summary": "Get report",
                "parameters": [
                    {"type": "string", "name": "videoId", "in": "path", "required": true, "description": "YouTube video ID or URL"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sponsorship.VideoReportResponse"}},
                    "400": {"description": "Invalid video ID"},
                    "404": {"description": "Report not found"}
                }
            },
            "delete": {
                "description": "Removes the stored report of a video so the next analysis starts fresh",
                "produces": ["application/json"],
                "tags": ["Sponsorships"],
                "summary": "Delete report",
                "parameters": [
                    {"type": "string", "name": "videoId", "in": "path", "required": true, "description": "YouTube video ID or URL"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid video ID"},
                    "500": {"description": "Cache operation failed"}
                }
            }
        },
        "/sponsorships/runs": {
            "get": {
                "description": "Lists the most recent analysis runs, newest first, optionally for one video",
                "produces": ["application/json"],
                "tags": ["Sponsorships"],
                "summary": "List analysis runs",
                "parameters": [
                    {"type": "string", "name": "video_id", "in": "query", "description": "Only runs of this YouTube video ID or URL"},
                    {"type": "integer", "name": "limit", "in": "query", "description": "Maximum number of runs (1-100)"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid limit or video ID"},
                    "500": {"description": "Database query failed"}
                }
            }
        },
        "/sponsorships/runs/{id}": {
            "get": {
                "description": "Returns one analysis run by ID",
                "produces": ["application/json"],
                "tags": ["Sponsorships"],
                "summary": "Get analysis run",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Run ID (UUID)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sponsorship.AnalysisRunResponse"}},
                    "400": {"description": "Invalid run ID"},
                    "404": {"description": "Run not found"},
                    "500": {"description": "Database query failed"}
                }
            }
        }
    },
    "definitions": {
        "sponsorship.AnalyzeVideoRequest": {
            "type": "object",
            "required": ["url"],
            "properties": {
                "url": {"type": "string"},
                "refresh": {"type": "boolean"}
            }
        },
        "sponsorship.AnalyzeChannelRequest": {
            "type": "object",
            "required": ["handle"],
            "properties": {
                "handle": {"type": "string"},
                "count": {"type": "integer", "minimum": 1, "maximum": 50}
            }
        },
        "sponsorship.SponsorshipResponse": {
            "type": "object",
            "properties": {
                "start": {"type": "number"},
                "stop": {"type": "number"},
                "duration": {"type": "number"},
                "transcript": {"type": "string"},
                "summary": {"type": "string"},
                "clip_url": {"type": "string"}
            }
        },
        "sponsorship.VideoReportResponse": {
            "type": "object",
            "properties": {
                "video_id": {"type": "string"},
                "url": {"type": "string"},
                "title": {"type": "string"},
                "published_at": {"type": "string"},
                "time_ago": {"type": "string"},
                "status": {"type": "string", "enum": ["completed", "no_segments", "partial", "unavailable", "failed"]},
                "sponsorships": {"type": "array", "items": {"$ref": "#/definitions/sponsorship.SponsorshipResponse"}},
                "segment_count": {"type": "integer"},
                "skipped_segments": {"type": "integer"},
                "error": {"type": "string"},
                "analyzed_at": {"type": "string"}
            }
        },
        "sponsorship.ChannelReportResponse": {
            "type": "object",
            "properties": {
                "handle": {"type": "string"},
                "requested": {"type": "integer"},
                "sponsorship_count": {"type": "integer"},
                "videos": {"type": "array", "items": {"$ref": "#/definitions/sponsorship.VideoReportResponse"}},
                "analyzed_at": {"type": "string"}
            }
        },
        "sponsorship.AnalysisRunResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "video_id": {"type": "string"},
                "channel_handle": {"type": "string"},
                "status": {"type": "string"},
                "segment_count": {"type": "integer"},
                "sponsorship_count": {"type": "integer"},
                "error": {"type": "string"},
                "started_at": {"type": "string"},
                "completed_at": {"type": "string"},
                "duration_seconds": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Sponsor Digest API",
	Description:      "Summarizes the sponsored segments of YouTube videos and channels",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
