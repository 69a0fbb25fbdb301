//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package docs - the swagger description of the API; keep it in step with the @Router annotations in internal/web
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "GNU GENERAL PUBLIC LICENSE 3"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/clusters/scores": {
            "post": {
                "description": "Fit k-means for every k in numbers and report the mean silhouette of each fit",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "nlp"
                ],
                "summary": "Cluster scores",
                "parameters": [
                    {
                        "description": "cluster counts",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/str.ScoresRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "number"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/clusters/{clusters_num}": {
            "get": {
                "description": "Fit k-means with clusters_num clusters and pair each label with PCA coordinates and the live course",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "nlp"
                ],
                "summary": "Clusters",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "number of clusters",
                        "name": "clusters_num",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/str.ClusterPointJSON"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/neighbors/{neighbors_num}": {
            "post": {
                "description": "Normalize the text, project it into the TF-IDF space and return the nearest course ids",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "nlp"
                ],
                "summary": "Neighbors",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "number of neighbors",
                        "name": "neighbors_num",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "query text",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/str.NeighborsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/str.NeighborJSON"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/topics/{topics_num}/{top_words_num}": {
            "get": {
                "description": "Fit NMF with topics_num components and list the top_words_num heaviest terms of each",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "nlp"
                ],
                "summary": "Topics",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "number of topics",
                        "name": "topics_num",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "words per topic",
                        "name": "top_words_num",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "array",
                                "items": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
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
        "str.ClusterDataJSON": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "url": {
                    "type": "string"
                }
            }
        },
        "str.ClusterPointJSON": {
            "type": "object",
            "properties": {
                "cluster": {
                    "type": "integer"
                },
                "data": {
                    "$ref": "#/definitions/str.ClusterDataJSON"
                },
                "x": {
                    "type": "number"
                },
                "y": {
                    "type": "number"
                }
            }
        },
        "str.NeighborJSON": {
            "type": "object",
            "properties": {
                "dist": {
                    "type": "number"
                },
                "id": {
                    "type": "integer"
                }
            }
        },
        "str.NeighborsRequest": {
            "type": "object",
            "required": [
                "text"
            ],
            "properties": {
                "text": {
                    "type": "string"
                }
            }
        },
        "str.ScoresRequest": {
            "type": "object",
            "required": [
                "numbers"
            ],
            "properties": {
                "numbers": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
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
	Title:            "NLP API",
	Description:      "Text NLP processing API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
