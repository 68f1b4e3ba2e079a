package storage

import "github.com/xeipuuv/gojsonschema"

const projectSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["planned_values", "earned_values", "actual_time"],
  "properties": {
    "name": {
      "type": "string"
    },
    "planned_values": {
      "type": "array",
      "minItems": 1,
      "items": { "type": "number" }
    },
    "earned_values": {
      "type": "array",
      "minItems": 1,
      "items": { "type": "number" }
    },
    "actual_time": {
      "type": "integer",
      "minimum": 0
    },
    "milestone_duration": {
      "type": "number",
      "minimum": 0
    },
    "replan_time": {
      "type": "integer",
      "minimum": 0
    }
  },
  "additionalProperties": false
}`

var projectSchemaLoader = gojsonschema.NewStringLoader(projectSchemaJSON)
