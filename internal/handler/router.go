package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the API exposes.
type Handlers struct {
	Booking      *BookingHandler
	Availability *AvailabilityHandler
	Provider     *ProviderHandler
	Schedule     *ScheduleExceptionHandler
	Settings     *SettingsHandler
	Audit        *AuditHandler
}

// RegisterRoutes mounts every endpoint under the given prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	bookings := api.Group("/bookings")
	bookings.POST("", h.Booking.Book)
	bookings.POST("/manual", h.Booking.BookManual)
	bookings.POST("/emergency", h.Booking.BookEmergency)
	bookings.GET("", h.Booking.List)
	bookings.DELETE("/:id", h.Booking.Cancel)

	availability := api.Group("/availability")
	availability.GET("/day", h.Availability.Day)
	availability.GET("/week", h.Availability.Week)
	availability.GET("/month", h.Availability.Month)
	api.GET("/slots", h.Availability.Slots)

	providers := api.Group("/providers")
	providers.GET("", h.Provider.List)
	providers.GET("/:id", h.Provider.Get)
	providers.POST("", h.Provider.Create)
	providers.PUT("/:id", h.Provider.Update)
	providers.DELETE("/:id", h.Provider.Delete)

	vacations := api.Group("/vacations")
	vacations.GET("", h.Schedule.ListVacations)
	vacations.POST("", h.Schedule.CreateVacation)
	vacations.DELETE("/:id", h.Schedule.DeleteVacation)

	timeOffs := api.Group("/time-offs")
	timeOffs.GET("", h.Schedule.ListTimeOffs)
	timeOffs.POST("", h.Schedule.CreateTimeOff)
	timeOffs.DELETE("/:id", h.Schedule.DeleteTimeOff)

	extras := api.Group("/extra-capacities")
	extras.GET("", h.Schedule.ListExtraCapacities)
	extras.POST("", h.Schedule.CreateExtraCapacity)
	extras.DELETE("/:id", h.Schedule.DeleteExtraCapacity)

	settings := api.Group("/settings")
	settings.GET("", h.Settings.Get)
	settings.PUT("", h.Settings.Update)

	api.GET("/audit", h.Audit.List)
}
