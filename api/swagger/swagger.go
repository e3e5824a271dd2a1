package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Physio Booking API",
        "description": "Appointment scheduling service for the physical therapy department",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Bookings", "description": "Slot search and appointment mutation"},
        {"name": "Availability", "description": "Day, week and month openness views"},
        {"name": "Providers", "description": "Therapist roster management"},
        {"name": "Schedule", "description": "Vacations, time off and extra capacity"},
        {"name": "Settings", "description": "Scheduler tuning"},
        {"name": "Audit", "description": "Mutation trail"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/bookings": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List appointments",
                "parameters": [
                    {"name": "providerId", "in": "query", "type": "string"},
                    {"name": "fileNo", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Bookings"],
                "summary": "Find and book the first available slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "Horizon exhausted, no slot booked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Slot booked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Booking locked or conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/manual": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Book an explicit provider, date and time",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ManualBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Slot booked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot taken or provider full", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/emergency": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Place an urgent case past all capacity ceilings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EmergencyBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Slot booked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/{id}": {
            "delete": {
                "tags": ["Bookings"],
                "summary": "Cancel an appointment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/day": {
            "get": {
                "tags": ["Availability"],
                "summary": "Availability of a single date",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "providerId", "in": "query", "type": "string"},
                    {"name": "specialty", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/week": {
            "get": {
                "tags": ["Availability"],
                "summary": "Availability of the seven days starting at a date",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "providerId", "in": "query", "type": "string"},
                    {"name": "specialty", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/month": {
            "get": {
                "tags": ["Availability"],
                "summary": "Availability of a calendar month",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "providerId", "in": "query", "type": "string"},
                    {"name": "specialty", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/slots": {
            "get": {
                "tags": ["Availability"],
                "summary": "Full slot grid for one provider on one date",
                "parameters": [
                    {"name": "providerId", "in": "query", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/providers": {
            "get": {
                "tags": ["Providers"],
                "summary": "List providers",
                "parameters": [
                    {"name": "specialty", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Providers"],
                "summary": "Create provider",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProviderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/providers/{id}": {
            "get": {
                "tags": ["Providers"],
                "summary": "Get provider by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Providers"],
                "summary": "Update provider",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProviderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Providers"],
                "summary": "Deactivate provider",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/vacations": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List vacations overlapping a date range",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedule"],
                "summary": "Declare a vacation or global closure",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VacationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/vacations/{id}": {
            "delete": {
                "tags": ["Schedule"],
                "summary": "Remove a vacation",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/time-offs": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List time-off windows in a date range",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedule"],
                "summary": "Declare a partial-day block",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TimeOffRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/time-offs/{id}": {
            "delete": {
                "tags": ["Schedule"],
                "summary": "Remove a time-off window",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/extra-capacities": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List extra capacity grants in a date range",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedule"],
                "summary": "Grant extra slots for one provider-date",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExtraCapacityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/extra-capacities/{id}": {
            "delete": {
                "tags": ["Schedule"],
                "summary": "Remove an extra capacity grant",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Current scheduler settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Replace scheduler settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/audit": {
            "get": {
                "tags": ["Audit"],
                "summary": "List audit entries",
                "parameters": [
                    {"name": "action", "in": "query", "type": "string"},
                    {"name": "fileNo", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "BookingRequest": {
            "type": "object",
            "required": ["fileNo", "type"],
            "properties": {
                "fileNo": {"type": "string"},
                "type": {"type": "string", "enum": ["normal", "semi_urgent", "urgent", "chronic", "nearest"]},
                "specialty": {"type": "string", "enum": ["ALL", "MSK", "NEURO", "PT_SERVICE"]},
                "timeOfDay": {"type": "string", "enum": ["morning", "afternoon"]},
                "providerId": {"type": "string"}
            }
        },
        "ManualBookingRequest": {
            "type": "object",
            "required": ["fileNo", "providerId", "date", "startTime", "type"],
            "properties": {
                "fileNo": {"type": "string"},
                "providerId": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "startTime": {"type": "string", "example": "09:45"},
                "type": {"type": "string"}
            }
        },
        "EmergencyBookingRequest": {
            "type": "object",
            "required": ["fileNo", "specialty"],
            "properties": {
                "fileNo": {"type": "string"},
                "specialty": {"type": "string"}
            }
        },
        "ProviderRequest": {
            "type": "object",
            "required": ["name", "specialty", "days", "dailyCapacity"],
            "properties": {
                "name": {"type": "string"},
                "specialty": {"type": "string", "enum": ["MSK", "NEURO", "PT_SERVICE"]},
                "days": {"type": "array", "items": {"type": "integer", "minimum": 0, "maximum": 6}},
                "dailyCapacity": {"type": "integer", "minimum": 1},
                "newPatientProvider": {"type": "boolean"},
                "newPatientQuota": {"type": "integer"},
                "active": {"type": "boolean"}
            }
        },
        "VacationRequest": {
            "type": "object",
            "required": ["startDate", "endDate"],
            "properties": {
                "providerId": {"type": "string"},
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"},
                "description": {"type": "string"}
            }
        },
        "TimeOffRequest": {
            "type": "object",
            "required": ["providerId", "date", "startTime", "endTime"],
            "properties": {
                "providerId": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "startTime": {"type": "string", "example": "10:00"},
                "endTime": {"type": "string", "example": "12:00"},
                "description": {"type": "string"}
            }
        },
        "ExtraCapacityRequest": {
            "type": "object",
            "required": ["providerId", "date", "slots"],
            "properties": {
                "providerId": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "slots": {"type": "integer", "minimum": 1}
            }
        },
        "SettingsRequest": {
            "type": "object",
            "properties": {
                "urgentDaysAhead": {"type": "integer"},
                "semiUrgentDaysAhead": {"type": "integer"},
                "normalDaysAhead": {"type": "integer"},
                "chronicWeeksAhead": {"type": "integer"},
                "emergencyDaysAhead": {"type": "integer"},
                "blockFridays": {"type": "boolean"},
                "blockSaturdays": {"type": "boolean"},
                "morningStartHour": {"type": "number"},
                "morningEndHour": {"type": "number"},
                "afternoonStartHour": {"type": "number"},
                "afternoonEndHour": {"type": "number"},
                "slotDurationMinutes": {"type": "integer"},
                "urgentReserve": {"type": "boolean"},
                "autoDistribute": {"type": "boolean"},
                "bookingLocked": {"type": "boolean"},
                "bookingLockUntil": {"type": "string", "format": "date"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
