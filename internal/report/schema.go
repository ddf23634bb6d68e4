package report

// Schema is the JSON Schema (Draft 2020-12) for the casegrid JSON
// report. It documents the structure written by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/casegrid/report.schema.json",
  "title": "casegrid Test Matrix Report",
  "description": "Output schema for casegrid generate --format=json",
  "type": "object",
  "required": ["version", "generated_at", "project", "functions", "statistics", "summary", "failed_tests", "sheets"],
  "properties": {
    "version": {
      "type": "string",
      "description": "Report format version (semver)"
    },
    "generated_at": {
      "type": "string",
      "format": "date-time"
    },
    "project": { "$ref": "#/$defs/Project" },
    "functions": {
      "type": "array",
      "items": { "$ref": "#/$defs/FunctionRow" }
    },
    "statistics": {
      "type": "array",
      "items": { "$ref": "#/$defs/StatisticsRow" }
    },
    "summary": { "$ref": "#/$defs/Summary" },
    "failed_tests": {
      "type": "array",
      "items": { "$ref": "#/$defs/FailedTest" }
    },
    "coverage": { "$ref": "#/$defs/Coverage" },
    "sheets": {
      "type": "array",
      "items": { "$ref": "#/$defs/Sheet" }
    }
  },
  "$defs": {
    "Project": {
      "type": "object",
      "properties": {
        "name": { "type": "string" },
        "version": { "type": "string" },
        "branch": { "type": "string" },
        "build": { "type": "string" }
      }
    },
    "FunctionRow": {
      "type": "object",
      "required": ["no", "requirement", "class", "function", "code", "sheet_name", "description", "precondition", "synthesized"],
      "properties": {
        "no": { "type": "integer", "minimum": 1 },
        "requirement": { "type": "string" },
        "class": { "type": "string" },
        "function": { "type": "string" },
        "code": { "type": "string", "pattern": "^Code_[0-9]+$" },
        "sheet_name": {
          "type": "string",
          "maxLength": 31,
          "description": "Final matrix sheet name; empty when the function has no executed tests"
        },
        "description": { "type": "string" },
        "precondition": { "type": "string" },
        "synthesized": {
          "type": "boolean",
          "description": "True when no documentation matched and the entry is a placeholder"
        }
      }
    },
    "StatisticsRow": {
      "type": "object",
      "required": ["no", "code", "passed", "failed", "untested", "normal", "abnormal", "boundary", "total"],
      "properties": {
        "no": { "type": "integer", "minimum": 1 },
        "code": { "type": "string" },
        "link": { "$ref": "#/$defs/Link" },
        "passed": { "type": "integer", "minimum": 0 },
        "failed": { "type": "integer", "minimum": 0 },
        "untested": { "type": "integer", "minimum": 0 },
        "normal": { "type": "integer", "minimum": 0 },
        "abnormal": { "type": "integer", "minimum": 0 },
        "boundary": { "type": "integer", "minimum": 0 },
        "total": { "type": "integer", "minimum": 0 }
      }
    },
    "Link": {
      "type": "object",
      "required": ["sheet", "cell", "label"],
      "properties": {
        "sheet": { "type": "string", "minLength": 1, "maxLength": 31 },
        "cell": { "type": "string" },
        "label": { "type": "string" }
      }
    },
    "Summary": {
      "type": "object",
      "required": ["total", "passed", "failed", "skipped", "other", "pass_rate", "slowest"],
      "properties": {
        "total": { "type": "integer", "minimum": 0 },
        "passed": { "type": "integer", "minimum": 0 },
        "failed": { "type": "integer", "minimum": 0 },
        "skipped": { "type": "integer", "minimum": 0 },
        "other": { "type": "integer", "minimum": 0 },
        "normal": { "type": "integer", "minimum": 0 },
        "abnormal": { "type": "integer", "minimum": 0 },
        "boundary": { "type": "integer", "minimum": 0 },
        "functions": { "type": "integer", "minimum": 0 },
        "synthesized": { "type": "integer", "minimum": 0 },
        "pass_rate": { "type": "number", "minimum": 0, "maximum": 100 },
        "slowest": {
          "type": "array",
          "maxItems": 5,
          "items": { "$ref": "#/$defs/SlowTest" }
        }
      }
    },
    "SlowTest": {
      "type": "object",
      "required": ["name", "class", "outcome", "duration_ns"],
      "properties": {
        "name": { "type": "string" },
        "class": { "type": "string" },
        "outcome": { "$ref": "#/$defs/Outcome" },
        "duration_ns": { "type": "integer", "minimum": 0 }
      }
    },
    "FailedTest": {
      "type": "object",
      "required": ["name", "class", "outcome", "duration_ns", "error_message"],
      "properties": {
        "name": { "type": "string" },
        "class": { "type": "string" },
        "outcome": { "$ref": "#/$defs/Outcome" },
        "duration_ns": { "type": "integer", "minimum": 0 },
        "error_message": {
          "type": "string",
          "description": "Failure message, cut at 100 characters with a trailing ellipsis"
        }
      }
    },
    "Coverage": {
      "type": "object",
      "properties": {
        "source": { "type": "string" },
        "line_coverage": { "type": "number" },
        "branch_coverage": { "type": "number" },
        "method_coverage": { "type": "number" },
        "class_coverage": { "type": "number" },
        "covered_lines": { "type": "integer" },
        "coverable_lines": { "type": "integer" }
      }
    },
    "Outcome": {
      "type": "string",
      "enum": ["Passed", "Failed", "NotExecuted", "Inconclusive", "Error", "Timeout", "Aborted", "Unknown"]
    },
    "Sheet": {
      "type": "object",
      "required": ["name", "class", "function", "columns", "rows"],
      "properties": {
        "name": { "type": "string", "minLength": 1, "maxLength": 31 },
        "class": { "type": "string" },
        "function": { "type": "string" },
        "columns": {
          "type": "array",
          "items": { "$ref": "#/$defs/Column" }
        },
        "rows": {
          "type": "array",
          "items": { "$ref": "#/$defs/Row" }
        }
      }
    },
    "Column": {
      "type": "object",
      "required": ["id", "title", "case", "record"],
      "properties": {
        "id": { "type": "string", "pattern": "^UTCID[0-9]{2,}$" },
        "title": { "type": "string" },
        "scenario": { "type": "string" },
        "case": { "$ref": "#/$defs/Case" },
        "record": { "$ref": "#/$defs/Record" }
      }
    },
    "Case": {
      "type": "object",
      "required": ["kind", "type"],
      "properties": {
        "kind": { "type": "string", "enum": ["TRUE", "FALSE", "EXCEPTION", ""] },
        "type": { "type": "string", "enum": ["N", "A", "B"] },
        "log_message": { "type": "string" }
      }
    },
    "Record": {
      "type": "object",
      "required": ["id", "class", "method", "display_name", "outcome", "duration"],
      "properties": {
        "id": { "type": "string" },
        "class": { "type": "string" },
        "method": { "type": "string" },
        "display_name": { "type": "string" },
        "outcome": { "$ref": "#/$defs/Outcome" },
        "start_time": { "type": "string" },
        "end_time": { "type": "string" },
        "duration": { "type": "integer", "minimum": 0 },
        "error_message": { "type": "string" },
        "source": { "type": "string" }
      }
    },
    "Row": {
      "type": "object",
      "required": ["kind", "label", "cells"],
      "properties": {
        "kind": {
          "type": "string",
          "enum": [
            "header", "section", "precondition", "input", "return",
            "false", "true", "exception", "log_header", "log_message",
            "case_type", "outcome", "executed_date", "defect_id"
          ]
        },
        "label": { "type": "string" },
        "cells": {
          "type": "array",
          "items": { "type": "string" }
        }
      }
    }
  }
}`
